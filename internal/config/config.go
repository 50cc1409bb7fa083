package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

// Checkout drives the cart and order-submission flow. BackOfficeURL points at
// the external order-management API; its failures never block a checkout.
type Checkout struct {
	TaxRate          float64       `yaml:"TAX_RATE" env:"CHECKOUT_TAX_RATE" env-default:"0.08"`
	BackOfficeURL    string        `yaml:"BACKOFFICE_URL" env:"BACKOFFICE_URL" env-default:"http://localhost:4000"`
	SubmitTimeout    time.Duration `yaml:"SUBMIT_TIMEOUT" env:"CHECKOUT_SUBMIT_TIMEOUT" env-default:"10s"`
	SnapshotTTL      time.Duration `yaml:"SNAPSHOT_TTL" env:"CHECKOUT_SNAPSHOT_TTL" env-default:"24h"`
	ConfirmationFrom string        `yaml:"CONFIRMATION_FROM" env:"CHECKOUT_CONFIRMATION_FROM" env-default:"billing@dreamworld.com"`
}

type Invoice struct {
	CompanyName    string `yaml:"COMPANY_NAME" env:"INVOICE_COMPANY_NAME" env-default:"DreamWorld"`
	CompanyTagline string `yaml:"COMPANY_TAGLINE" env:"INVOICE_COMPANY_TAGLINE" env-default:"Innovation & Technology Solutions"`
	CompanyStreet  string `yaml:"COMPANY_STREET" env:"INVOICE_COMPANY_STREET" env-default:"123 Innovation Street"`
	CompanyCity    string `yaml:"COMPANY_CITY" env:"INVOICE_COMPANY_CITY" env-default:"Tech City, TC 12345"`
	CompanyPhone   string `yaml:"COMPANY_PHONE" env:"INVOICE_COMPANY_PHONE" env-default:"Phone: (555) 123-4567"`
	CompanyEmail   string `yaml:"COMPANY_EMAIL" env:"INVOICE_COMPANY_EMAIL" env-default:"billing@dreamworld.com"`
}

type OAuthProvider struct {
	ClientID     string `yaml:"CLIENT_ID" env-default:""`
	ClientSecret string `yaml:"CLIENT_SECRET" env-default:""`
	RedirectURL  string `yaml:"REDIRECT_URL" env-default:""`
}

type OAuth struct {
	Google   OAuthProvider `yaml:"google" env-prefix:"GOOGLE_OAUTH_"`
	GitHub   OAuthProvider `yaml:"github" env-prefix:"GITHUB_OAUTH_"`
	StateTTL time.Duration `yaml:"STATE_TTL" env:"OAUTH_STATE_TTL" env-default:"10m"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"billing@dreamworld.com"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"DreamWorld"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Checkout     Checkout     `yaml:"checkout"`
	Invoice      Invoice      `yaml:"invoice"`
	OAuth        OAuth        `yaml:"oauth"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
