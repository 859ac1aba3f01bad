package configs

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string
	APP_ENV    string

	JWTSecret string

	IYZI_API_KEY    string
	IYZI_SECRET_KEY string
	IYZI_BASE_URL   string
	FRONTEND_URL    string

	MIDTRANS_SERVER_KEY string
	MIDTRANS_CLIENT_KEY string

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string
	ContactInbox  string

	UploadDir string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "eticaret"),
		DBPort:     getEnv("DB_PORT", "3306"),
		Port:       getEnv("APP_PORT", ":8080"),
		APP_ENV:    getEnv("APP_ENV", "development"),

		JWTSecret: getEnv("JWT_SECRET", "insecure-dev-secret"),

		IYZI_API_KEY:    os.Getenv("IYZI_API_KEY"),
		IYZI_SECRET_KEY: os.Getenv("IYZI_SECRET_KEY"),
		IYZI_BASE_URL:   os.Getenv("IYZI_BASE_URL"),
		FRONTEND_URL:    getEnv("FRONTEND_URL", "http://localhost:3000"),

		MIDTRANS_SERVER_KEY: os.Getenv("MIDTRANS_SERVER_KEY"),
		MIDTRANS_CLIENT_KEY: os.Getenv("MIDTRANS_CLIENT_KEY"),

		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     getEnv("EMAIL_PORT", "587"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     os.Getenv("EMAIL_USERNAME"),
		ContactInbox:  os.Getenv("CONTACT_INBOX"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

}

// Validate runs once from main. İyzico credentials are required up front
// because every payment endpoint depends on them.
func (e ENV) Validate() error {
	if e.DBHost == "" || e.DBUser == "" || e.DBName == "" || e.DBPort == "" {
		return errors.New("database configuration is incomplete (DB_HOST, DB_USER, DB_NAME, DB_PORT)")
	}
	if e.IYZI_API_KEY == "" || e.IYZI_SECRET_KEY == "" || e.IYZI_BASE_URL == "" {
		return errors.New("missing IYZI_API_KEY, IYZI_SECRET_KEY or IYZI_BASE_URL")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var LoadENV = LoadEnv()
