package invoice_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dreamworldhq/storefront/internal/invoice"
	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompany() invoice.Company {
	return invoice.Company{
		Name:    "DreamWorld",
		Tagline: "Innovation & Technology Solutions",
		Street:  "123 Innovation Street",
		City:    "Tech City, TC 12345",
		Phone:   "Phone: (555) 123-4567",
		Email:   "billing@dreamworld.com",
	}
}

func testSnapshot() *models.OrderSnapshot {
	return &models.OrderSnapshot{
		ID:            uuid.New(),
		CustomerName:  "Jane Shopper",
		Email:         "jane@example.com",
		Address:       "1 Main St",
		PaymentMethod: "Credit Card",
		Items: []models.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 100, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", UnitPrice: 50, Quantity: 1},
		},
		Totals:      models.Totals{Subtotal: 250, Tax: 20, Total: 270},
		SubmittedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {

	t.Run("Success - Produces A PDF", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())

		// Act
		doc, err := generator.Generate(testSnapshot())

		// Assert
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")), "output should carry the PDF magic bytes")
		assert.NotEmpty(t, doc.Number)
		assert.NotEmpty(t, doc.FileName)
	})

	t.Run("Success - Invoice Number From Clock", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		generator.Now = func() time.Time { return time.UnixMilli(1756551600123) }

		// Act
		doc, err := generator.Generate(testSnapshot())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "INV-600123", doc.Number, "last six digits of the millisecond timestamp")
	})

	t.Run("Success - Regeneration Yields Fresh Numbers", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		ms := int64(1756551600123)
		generator.Now = func() time.Time {
			ms++

			return time.UnixMilli(ms)
		}
		snapshot := testSnapshot()

		// Act
		first, err1 := generator.Generate(snapshot)
		second, err2 := generator.Generate(snapshot)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.Number, second.Number)
	})

	t.Run("Success - Download Filename", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		generator.Now = func() time.Time { return time.UnixMilli(1756551600123) }

		// Act
		doc, err := generator.Generate(testSnapshot())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "DreamWorld_Bill_Jane_Shopper_INV-600123.pdf", doc.FileName)
	})

	t.Run("Success - Many Items Paginate", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		snapshot := testSnapshot()
		snapshot.Items = nil

		for range 30 {
			snapshot.Items = append(snapshot.Items, models.LineItem{
				ProductID: uuid.NewString(),
				Name:      "Bulk Item",
				UnitPrice: 9.99,
				Quantity:  1,
			})
		}

		// Act
		small, errSmall := generator.Generate(testSnapshot())
		doc, err := generator.Generate(snapshot)

		// Assert
		require.NoError(t, errSmall)
		require.NoError(t, err)

		pages := func(d *invoice.Document) int {
			return strings.Count(string(d.Content), "/Type /Page")
		}
		assert.Greater(t, pages(doc), pages(small), "thirty rows should spill onto a second page")
	})

	t.Run("Success - Empty Item List Still Renders", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		snapshot := testSnapshot()
		snapshot.Items = nil
		snapshot.Totals = models.Totals{}

		// Act
		doc, err := generator.Generate(snapshot)

		// Assert
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	})

	t.Run("Success - Long Customer Name In Filename", func(t *testing.T) {
		// Arrange
		generator := invoice.NewGenerator(testCompany())
		snapshot := testSnapshot()
		snapshot.CustomerName = "Maximiliana  von   Hohenzollern"

		// Act
		doc, err := generator.Generate(snapshot)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, doc.FileName, "Maximiliana_von_Hohenzollern")
		assert.NotContains(t, doc.FileName, " ")
	})
}
