// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
)

// Config holds the environment-driven settings for the storefront.
type Config struct {
	Port string

	// Cart
	CartStoreBackend string // "memory" | "file" | "firestore" | "redis"
	CartFilePath     string
	MaxQuantity      int

	// Catalog
	CatalogURL  string // listing endpoint; when empty CatalogFile is used
	CatalogFile string

	// Auth
	AuthBackend string // "file" | "firebase"
	UsersFile   string
	SessionFile string

	// Redis
	RedisAddr     string
	RedisPassword string

	// Postgres order archive (empty DSN disables archiving)
	PostgresDSN string

	// GCP
	GCSBucket                string
	GCPCreds                 string
	GCPProjectID             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Mail (empty API key disables the order mailer)
	SendGridAPIKey     string
	SendGridSecretName string // Secret Manager resource name, overrides SendGridAPIKey
	MailFrom           string
	OrdersNotifyTo     string
}

// Load reads the environment and returns the assembled Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		CartStoreBackend: getenvDefault("CART_STORE", "file"),
		CartFilePath:     getenvDefault("CART_FILE", "carts.json"),
		MaxQuantity:      getenvInt("CART_MAX_QUANTITY", 0),

		CatalogURL:  os.Getenv("CATALOG_URL"),
		CatalogFile: getenvDefault("CATALOG_FILE", "products.json"),

		AuthBackend: getenvDefault("AUTH_BACKEND", "file"),
		UsersFile:   getenvDefault("USERS_FILE", "users.json"),
		SessionFile: getenvDefault("SESSION_FILE", ".session.json"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		GCSBucket:                os.Getenv("GCS_BUCKET"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFrom:           os.Getenv("MAIL_FROM"),
		OrdersNotifyTo:     os.Getenv("ORDERS_NOTIFY_TO"),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
