package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Shop   ShopConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type ServerConfig struct {
	Port string
}

// ShopConfig is the identity block printed on receipts.
type ShopConfig struct {
	Name    string
	Address string
	City    string
	Phone   string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ticket_engine"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Shop: ShopConfig{
			Name:    getEnv("SHOP_NAME", "═══ RESTAURANT POS ═══"),
			Address: getEnv("SHOP_ADDRESS", "123 Restaurant Street"),
			City:    getEnv("SHOP_CITY", "City, State 12345"),
			Phone:   getEnv("SHOP_PHONE", "Tel: (555) 123-4567"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
