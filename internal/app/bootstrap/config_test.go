package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "dungeon_hub",
		JWTSecret:     "a-strong-secret-that-is-not-the-default",
		JWTIssuer:     "dungeonhub",
		TokenTTL:      time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), zap.NewNop()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(coreCfg, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a non-mongodb URI")
	}
}

func TestValidateConfig_EmptySecret(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()
	cfg.JWTSecret = ""
	if err := ValidateConfig(coreCfg, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for an empty jwt_secret")
	}
}

func TestValidateConfig_DevSecretInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

	// The dev default passes outside prod but is rejected in prod.
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err != nil {
		t.Errorf("dev default should pass in dev: %v", err)
	}
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, zap.NewNop()); err == nil {
		t.Error("dev default must be rejected in prod")
	}
}

func TestValidateConfig_NonPositiveTTL(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()
	cfg.TokenTTL = 0
	if err := ValidateConfig(coreCfg, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a zero token_ttl")
	}
}
