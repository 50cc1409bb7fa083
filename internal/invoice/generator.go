// Package invoice renders the downloadable purchase invoice from an order
// snapshot. The document is produced entirely in-process; nothing is stored
// server-side.
package invoice

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth = 210.0

	tableLeft  = 20.0
	tableWidth = 170.0

	// rows past this y start a fresh page with a repeated table header
	usablePageHeight = 250.0

	rowHeight = 12.0

	// longer item names overflow the description column
	maxNameLength = 25
)

type Company struct {
	Name    string
	Tagline string
	Street  string
	City    string
	Phone   string
	Email   string
}

type Document struct {
	Number   string
	FileName string
	Content  []byte
}

type Generator struct {
	company Company

	// Now is the clock used for the invoice number and dates. Overridable
	// in tests.
	Now func() time.Time
}

func NewGenerator(company Company) *Generator {
	return &Generator{company: company, Now: time.Now}
}

// number derives the invoice number from the generation timestamp. Not
// globally unique across machines; regenerating from the same snapshot
// yields a fresh number each time.
func (g *Generator) number() string {
	ms := strconv.FormatInt(g.Now().UnixMilli(), 10)

	return "INV-" + ms[len(ms)-6:]
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > maxNameLength {
		return string(runes[:maxNameLength]) + "..."
	}

	return name
}

func fileName(company, customer, number string) string {
	safe := strings.Join(strings.Fields(customer), "_")

	return fmt.Sprintf("%s_Bill_%s_%s.pdf", company, safe, number)
}

// Generate renders the invoice for the given snapshot and returns the
// document bytes plus the suggested download filename.
func (g *Generator) Generate(snapshot *models.OrderSnapshot) (*Document, error) {

	number := g.number()
	currentDate := g.Now().Format("January 2, 2006")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(g.company.Name+" Invoice", false)
	pdf.SetSubject("Purchase Invoice", false)
	pdf.SetAuthor(g.company.Name, false)
	pdf.SetCreator(g.company.Name+" Billing System", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// branded header band
	pdf.SetFillColor(88, 28, 135)
	pdf.Rect(0, 0, pageWidth, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(20, 25, g.company.Name)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 35, g.company.Tagline)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(150, 20, g.company.Street)
	pdf.Text(150, 25, g.company.City)
	pdf.Text(150, 30, g.company.Phone)
	pdf.Text(150, 35, "Email: "+g.company.Email)

	// invoice metadata box
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(tableLeft, 50, tableWidth, 30, "F")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(tableLeft, 50, tableWidth, 30, "D")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(88, 28, 135)
	pdf.Text(30, 65, "INVOICE")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(120, 60, "Invoice #: "+number)
	pdf.Text(120, 67, "Date: "+currentDate)
	pdf.Text(120, 74, "Due Date: "+currentDate)

	// customer block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(20, 100, "Bill To:")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(20, 110, snapshot.CustomerName)
	pdf.Text(20, 117, snapshot.Address)

	g.drawTableHeader(pdf, 130)

	y := 150.0

	for i, item := range snapshot.Items {

		if y > usablePageHeight {
			pdf.AddPage()
			y = 20

			g.drawTableHeader(pdf, y)
			y += 20
		}

		// alternating row background
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
			pdf.Rect(tableLeft, y-5, tableWidth, 10, "F")
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)

		pdf.Text(25, y, truncateName(item.Name))
		pdf.Text(100, y, strconv.Itoa(item.Quantity))
		pdf.Text(130, y, fmt.Sprintf("$%.2f", item.UnitPrice))
		pdf.Text(170, y, fmt.Sprintf("$%.2f", item.LineTotal()))

		y += rowHeight
	}

	// totals block
	y += 5
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(tableLeft, y, 190, y)
	y += 10

	taxLabel := "Tax:"
	if snapshot.Totals.Subtotal > 0 {
		taxLabel = fmt.Sprintf("Tax (%.0f%%):", snapshot.Totals.Tax/snapshot.Totals.Subtotal*100)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(150, y, "Subtotal:")
	textRight(pdf, 190, y, fmt.Sprintf("$%.2f", snapshot.Totals.Subtotal))
	y += 8

	pdf.Text(150, y, taxLabel)
	textRight(pdf, 190, y, fmt.Sprintf("$%.2f", snapshot.Totals.Tax))
	y += 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(150, y, "Total Amount:")
	textRight(pdf, 190, y, fmt.Sprintf("$%.2f", snapshot.Totals.Total))

	// payment terms
	y += 15
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(20, y, "Payment Terms: Due upon receipt")
	pdf.Text(20, y+5, "Payment Method: "+snapshot.PaymentMethod)

	// footer
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(88, 28, 135)
	pdf.Text(20, 280, "Thank you for choosing "+g.company.Name+"!")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(20, 287, "For any questions about this invoice, please contact us at "+g.company.Email)
	pdf.Text(20, 294, "This is a computer-generated invoice. No signature required.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return &Document{
		Number:   number,
		FileName: fileName(g.company.Name, snapshot.CustomerName, number),
		Content:  buf.Bytes(),
	}, nil
}

func (g *Generator) drawTableHeader(pdf *fpdf.Fpdf, y float64) {

	pdf.SetFillColor(88, 28, 135)
	pdf.Rect(tableLeft, y, tableWidth, 12, "F")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(25, y+9, "Item Description")
	pdf.Text(100, y+9, "Qty")
	pdf.Text(130, y+9, "Unit Price")
	pdf.Text(170, y+9, "Total")
}

func textRight(pdf *fpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}
