package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vendas-ahora/api-vendas/internal/config_lib"
)

// Load resolves the app config: from Secrets Manager when
// APP_SECRET_ID is set, from plain env otherwise.
func Load(ctx context.Context) (AppConfig, error) {
	secretID := os.Getenv("APP_SECRET_ID")
	if secretID == "" {
		return LoadEnv(), nil
	}
	return loadSecretManager(ctx, secretID)
}

func loadSecretManager(ctx context.Context, secretID string) (AppConfig, error) {
	region := getEnv("AWS_REGION", "us-east-1")

	sm, err := config_lib.NewSecretsManager(ctx, region)
	if err != nil {
		return AppConfig{}, fmt.Errorf("creating secrets manager client: %w", err)
	}

	raw, err := sm.GetSecretString(ctx, secretID, "AWSCURRENT")
	if err != nil {
		return AppConfig{}, fmt.Errorf("fetching secret: %w", err)
	}

	var secret SecretApp
	if err := json.Unmarshal([]byte(raw), &secret); err != nil {
		return AppConfig{}, fmt.Errorf("parsing secret JSON: %w", err)
	}
	return secret.ToAppConfig(), nil
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}
}
