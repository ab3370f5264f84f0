package config

import (
	"os"
	"time"

	"github.com/vendas-ahora/api-vendas/internal/utils"
)

type AppConfig struct {
	Addr string
	DB   DBConfig
	S3   S3Config
	MQ   MQConfig
	Auth AuthConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type S3Config struct {
	Region string
	Bucket string
}

type MQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// SecretApp mirrors the JSON layout of the Secrets Manager secret.
type SecretApp struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"username"`
	Pass     string `json:"password"`
	Name     string `json:"dbname"`
	SSL      string `json:"sslmode"`
	S3Bucket string `json:"bucket"`
	S3Region string `json:"region"`
	MQHost   string `json:"MQ_HOST"`
	MQPort   int    `json:"MQ_PORT"`
	MQUser   string `json:"MQ_USER"`
	MQPass   string `json:"MQ_PASSWORD"`
	MQVHost  string `json:"MQ_VHOST"`
	JWT      string `json:"jwt_secret"`
}

func (s SecretApp) ToAppConfig() AppConfig {
	cfg := LoadEnv()
	cfg.DB = DBConfig{
		Host:     s.Host,
		Port:     s.Port,
		User:     s.User,
		Password: s.Pass,
		DBName:   s.Name,
		SSLMode:  s.SSL,
	}
	cfg.S3 = S3Config{Region: s.S3Region, Bucket: s.S3Bucket}
	cfg.MQ = MQConfig{
		Host:     s.MQHost,
		Port:     s.MQPort,
		User:     s.MQUser,
		Password: s.MQPass,
		VHost:    s.MQVHost,
	}
	if s.JWT != "" {
		cfg.Auth.JWTSecret = s.JWT
	}
	return cfg
}

// LoadEnv builds the config from plain environment variables.
func LoadEnv() AppConfig {
	return AppConfig{
		Addr: getEnv("ADDR", ":8080"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     utils.AtoiDefault(os.Getenv("DB_PORT"), 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "vendas"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		S3: S3Config{
			Region: getEnv("AWS_REGION", ""),
			Bucket: getEnv("S3_BUCKET", ""),
		},
		MQ: MQConfig{
			Host:     getEnv("MQ_HOST", ""),
			Port:     utils.AtoiDefault(os.Getenv("MQ_PORT"), 5671),
			User:     getEnv("MQ_USER", ""),
			Password: getEnv("MQ_PASSWORD", ""),
			VHost:    getEnv("MQ_VHOST", "/"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(utils.AtoiDefault(os.Getenv("TOKEN_TTL_HOURS"), 24)) * time.Hour,
		},
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
