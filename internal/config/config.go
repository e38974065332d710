package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Indicator maps a World Bank indicator code to the dataset column it fills.
type Indicator struct {
	Code   string
	Column string
}

// Config holds the full run configuration for the pipeline.
type Config struct {
	APIBaseURL string
	PerPage    int
	MaxRetries int

	DataDir   string
	FigureDir string

	Countries  []string
	Indicators []Indicator
	MinYear    int

	ForecastCountry string
	ForecastHorizon int

	ClusterK    int
	ClusterSeed int64

	// FigureSuffix is appended to figure file names before the extension so a
	// second implementation can write into the same directory for visual diffing.
	FigureSuffix string
}

// DefaultCountries are the 19 economies the dataset is restricted to.
var DefaultCountries = []string{
	"USA", "CHN", "IND", "JPN", "RUS", "DEU", "GBR", "FRA", "BRA", "CAN",
	"AUS", "ZAF", "MEX", "SAU", "IDN", "KOR", "ITA", "ESP", "TUR",
}

// DefaultIndicators are the four World Bank series the dataset is built from.
var DefaultIndicators = []Indicator{
	{Code: "EG.FEC.RNEW.ZS", Column: "renewable_share"},
	{Code: "EG.USE.PCAP.KG.OE", Column: "energy_use_per_capita"},
	{Code: "SP.POP.TOTL", Column: "population"},
	{Code: "NY.GDP.PCAP.KD", Column: "gdp_per_capita"},
}

// Load loads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:      getenv("WB_API_URL", "https://api.worldbank.org/v2"),
		PerPage:         getenvInt("WB_PER_PAGE", 20000),
		MaxRetries:      getenvInt("WB_MAX_RETRIES", 3),
		DataDir:         getenv("DATA_DIR", "data"),
		FigureDir:       getenv("FIGURE_DIR", "figures"),
		Countries:       getenvList("COUNTRIES", DefaultCountries),
		Indicators:      DefaultIndicators,
		MinYear:         getenvInt("MIN_YEAR", 1990),
		ForecastCountry: getenv("FORECAST_COUNTRY", "USA"),
		ForecastHorizon: getenvInt("FORECAST_HORIZON", 10),
		ClusterK:        getenvInt("CLUSTER_K", 3),
		ClusterSeed:     int64(getenvInt("CLUSTER_SEED", 42)),
		FigureSuffix:    getenv("FIGURE_SUFFIX", ""),
	}
}

// DatasetPath is the location of the persisted CSV artifact.
func (c Config) DatasetPath() string {
	return filepath.Join(c.DataDir, "processed_data.csv")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
