package belka

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config carries the environment-backed settings of the pipeline. Every value
// has a default suitable for a local checkout; a .env file or the process
// environment overrides them.
type Config struct {
	InputFile     string // XTB statement XLSX to process
	OutputFile    string // spreadsheet export path
	DataDir       string // directory holding the NBP archive CSV files
	NBPArchiveURL string // base URL of the NBP Table A yearly archives
	BelkaRate     decimal.Decimal
}

// DefaultNBPArchiveURL is where NBP publishes the yearly Table A CSV archives.
const DefaultNBPArchiveURL = "https://static.nbp.pl/dane/kursy/Archiwum"

// LoadConfig reads settings from the environment, loading a .env file first
// when one is present. It fails fast on an invalid tax rate.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}

	cfg := &Config{
		InputFile:     getenv("BELKA_INPUT_FILE", "data/statement.xlsx"),
		OutputFile:    getenv("BELKA_OUTPUT_FILE", "output/for_google_spreadsheet.csv"),
		DataDir:       getenv("BELKA_DATA_DIR", "data"),
		NBPArchiveURL: getenv("NBP_ARCHIVE_URL", DefaultNBPArchiveURL),
	}

	rateStr := getenv("BELKA_TAX_RATE", DefaultBelkaRate.String())
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BELKA_TAX_RATE %q: %w", rateStr, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("BELKA_TAX_RATE must be between 0 and 1, got %s", rate)
	}
	cfg.BelkaRate = rate
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
