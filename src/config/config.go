package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Port        int
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	LogFormat   string

	// Static assets and product image uploads
	PublicDir string
	UploadDir string

	// Admin auto-seed (first run only)
	AdminUsername string
	AdminPassword string

	// Optional restaurant branding file (restaurant.yml)
	RestaurantFile string

	AllowedOrigins string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first, without overriding variables already set.
//
// DATABASE_URL and JWT_SECRET are mandatory: the process must refuse to start
// with a missing or weak secret instead of falling back to a baked-in default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvInt("PORT", 3000),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		PublicDir:      getEnv("PUBLIC_DIR", "./public"),
		UploadDir:      getEnv("UPLOAD_DIR", "./public/uploads"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		RestaurantFile: getEnv("RESTAURANT_FILE", "restaurant.yml"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	return cfg, nil
}

// Restaurant holds display information served on the public info endpoint.
type Restaurant struct {
	Nome     string `yaml:"nome"`
	Telefone string `yaml:"telefone"`
	Endereco string `yaml:"endereco"`
	Horario  string `yaml:"horario"`
}

// LoadRestaurant parses the optional branding file. A missing file is not an
// error; the info endpoint simply omits the fields.
func LoadRestaurant(path string) (*Restaurant, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Restaurant{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var r Restaurant
	if err := yaml.Unmarshal(content, &r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &r, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
