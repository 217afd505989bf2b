package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"searchlight/internal/logger"
)

// ErrMissingEnv dikembalikan jika variabel lingkungan wajib tidak diset.
var ErrMissingEnv = errors.New("required environment variables are not set")

// DefaultCategoryIDs adalah lima kategori YouTube yang dikumpulkan collector:
// hewan peliharaan, blog, komedi, gaya, sains & teknologi.
var DefaultCategoryIDs = []string{"15", "22", "23", "26", "28"}

// Database berisi konfigurasi koneksi yang dipakai semua program.
type Database struct {
	URL string
	Key string
}

// Collector adalah konfigurasi untuk cmd/collector.
type Collector struct {
	Database
	YouTubeAPIKey string
	CategoryIDs   []string
	RegionCode    string
	MaxResults    int64
	Schedule      string
	MetricsPort   string
	LogLevel      string
}

// WebApp adalah konfigurasi untuk cmd/webapp.
type WebApp struct {
	Database
	Password      string
	Port          string
	RedisURL      string
	SessionSecret string
	CORSOrigins   []string
	LogLevel      string
}

// LoadDotEnv memuat variabel dari file .env jika ada.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Logger.Info().Msg("No .env file found, using environment variables")
	}
}

// LoadDatabase membaca DATABASE_URL dan DATABASE_KEY.
func LoadDatabase() (Database, error) {
	db := Database{
		URL: os.Getenv("DATABASE_URL"),
		Key: os.Getenv("DATABASE_KEY"),
	}
	if err := requireEnv("DATABASE_URL", "DATABASE_KEY"); err != nil {
		return db, err
	}
	return db, nil
}

// LoadCollector membaca konfigurasi collector.
func LoadCollector() (*Collector, error) {
	if err := requireEnv("DATABASE_URL", "DATABASE_KEY", "YOUTUBE_API_KEY"); err != nil {
		return nil, err
	}

	maxResults, err := strconv.ParseInt(getEnv("MAX_RESULTS", "15"), 10, 64)
	if err != nil || maxResults < 1 || maxResults > 50 {
		return nil, fmt.Errorf("MAX_RESULTS must be an integer between 1 and 50")
	}

	return &Collector{
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
			Key: os.Getenv("DATABASE_KEY"),
		},
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		CategoryIDs:   splitList(getEnv("CATEGORY_IDS", strings.Join(DefaultCategoryIDs, ","))),
		RegionCode:    getEnv("REGION_CODE", "KR"),
		MaxResults:    maxResults,
		Schedule:      os.Getenv("COLLECTOR_SCHEDULE"),
		MetricsPort:   os.Getenv("METRICS_PORT"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// LoadWebApp membaca konfigurasi dashboard.
func LoadWebApp() (*WebApp, error) {
	if err := requireEnv("DATABASE_URL", "DATABASE_KEY", "DASHBOARD_PASSWORD"); err != nil {
		return nil, err
	}
	return &WebApp{
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
			Key: os.Getenv("DATABASE_KEY"),
		},
		Password:      os.Getenv("DASHBOARD_PASSWORD"),
		Port:          getEnv("PORT", "8080"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN menggabungkan DATABASE_URL dengan DATABASE_KEY sebagai password.
// Password yang sudah ada di URL diganti.
func (d Database) DSN() string {
	if d.Key == "" {
		return d.URL
	}

	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		// Format key=value milik libpq.
		return strings.TrimSpace(d.URL) + " password=" + quoteKeyword(d.Key)
	}

	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, d.Key)
	return u.String()
}

func requireEnv(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func quoteKeyword(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
