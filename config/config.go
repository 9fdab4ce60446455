package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/caarlos0/env/v10"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogMode string `json:"log_mode"` // "dev" or "prod"

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret string `json:"jwt_secret"`
	} `json:"security"`
}

// Providers holds credentials for every external service the pipeline calls.
// Populated from environment variables, 12-factor style.
type Providers struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`

	ClipdropAPIKey  string `env:"CLIPDROP_API_KEY"`
	ClipdropBaseURL string `env:"CLIPDROP_BASE_URL" envDefault:"https://clipdrop-api.co"`

	CloudinaryCloudName   string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey      string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret   string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadURL   string `env:"CLOUDINARY_UPLOAD_URL" envDefault:"https://api.cloudinary.com"`
	CloudinaryDeliveryURL string `env:"CLOUDINARY_DELIVERY_URL" envDefault:"https://res.cloudinary.com"`

	IdentityBaseURL string `env:"IDENTITY_API_URL"`
	IdentityAPIKey  string `env:"IDENTITY_API_KEY"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}

	return c
}

func LoadProviders() (Providers, error) {
	var p Providers
	if err := env.Parse(&p); err != nil {
		return Providers{}, err
	}
	return p, nil
}
