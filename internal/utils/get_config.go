package utils

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppURL  string `yaml:"APP_URL"`
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

// LoadConfig reads config.yaml, then lets .env and the process environment
// override any key. It only runs once per process.
func LoadConfig() {
	configOnce.Do(loadConfig)
}

func loadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	for key, field := range configFields() {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}

	if config.AppURL == "" {
		config.AppURL = "http://localhost:8080"
	}
	if config.AppPort == "" {
		config.AppPort = "8080"
	}
}

func configFields() map[string]*string {
	return map[string]*string{
		"APP_URL":            &config.AppURL,
		"APP_PORT":           &config.AppPort,
		"DB_USER":            &config.DBUser,
		"DB_NAME":            &config.DBName,
		"DB_PASSWORD":        &config.DBPassword,
		"DB_PORT":            &config.DBPort,
		"DB_HOST":            &config.DBHost,
		"JWT_SECRET":         &config.JWTSecret,
		"SMTP_HOST":          &config.SMTPHost,
		"SMTP_PORT":          &config.SMTPPort,
		"SMTP_SENDER_NAME":   &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &config.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &config.AWSS3Bucket,
		"AWS_S3_REGION":      &config.AWSS3Region,
		"AWS_S3_ENDPOINT":    &config.AWSS3Endpoint,
		"AWS_ACCESS_KEY":     &config.AWSAccessKey,
		"AWS_SECRET_KEY":     &config.AWSSecretKey,
	}
}

func GetConfig(key string) string {
	LoadConfig()
	if field, ok := configFields()[key]; ok {
		return *field
	}
	return ""
}
