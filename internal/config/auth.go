package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "dev-secret"
			log.Println("Warning: JWT_SECRET not set, using development secret")
		}
		ttl := 24 * time.Hour
		if raw := os.Getenv("JWT_TTL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				ttl = parsed
			}
		}
		authConfig = &AuthConfig{JWTSecret: secret, TokenTTL: ttl}
	})
	return authConfig
}
