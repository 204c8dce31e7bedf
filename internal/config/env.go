package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBUser      string
	DBPass      string
	DBHost      string
	DBName      string
	RedisAddr   string
	CORSOrigins []string
}

var jwtSecret = []byte("super-secret-key-change-me")

// JWTSecret returns the HMAC key used to sign and verify API tokens.
// Override it with the JWT_SECRET env var outside local development.
func JWTSecret() []byte {
	return jwtSecret
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	if s := strings.TrimSpace(os.Getenv("JWT_SECRET")); s != "" {
		jwtSecret = []byte(s)
	}

	origins := []string{}
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     ginMode,
		DBUser:      envOr("DB_USER", "root"),
		DBPass:      strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:      envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:      envOr("DB_NAME", "cms_app"),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CORSOrigins: origins,
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
