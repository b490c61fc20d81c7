package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Storefront policy.
	Currency        string
	ShippingFlatFee float64
	TaxRate         float64
	OrderIDPrefix   string

	// Persistence.
	GCPProjectID      string
	CredentialsFile   string
	FirestoreDisabled bool
	DataDir           string

	// EasyPaisa gateway.
	EasyPaisaMode       string
	EasyPaisaMerchantID string
	EasyPaisaStoreID    string
	EasyPaisaSecureKey  string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		Currency:        getEnv("CURRENCY", "PKR"),
		ShippingFlatFee: getEnvFloat("SHIPPING_FLAT_FEE", 200),
		TaxRate:         getEnvFloat("TAX_RATE", 0),
		OrderIDPrefix:   getEnv("ORDER_ID_PREFIX", "SW"),

		GCPProjectID:      getEnv("GCP_PROJECT_ID", ""),
		CredentialsFile:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FirestoreDisabled: getEnvBool("FIRESTORE_DISABLED", false),
		DataDir:           getEnv("DATA_DIR", "data"),

		EasyPaisaMode:       getEnv("EASYPAISA_MODE", "sandbox"),
		EasyPaisaMerchantID: getEnv("EASYPAISA_MERCHANT_ID", ""),
		EasyPaisaStoreID:    getEnv("EASYPAISA_STORE_ID", ""),
		EasyPaisaSecureKey:  getEnv("EASYPAISA_SECURE_KEY", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
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

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}

	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
