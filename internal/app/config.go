package app

import (
	"strings"
	"time"

	"github.com/yungbote/classroom-backend/internal/platform/envutil"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey string
	JWTIssuer    string

	ImporterSecret    string
	AllowedOrigins    []string
	GuideFetchTimeout time.Duration
	MetricsAddr       string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:              envutil.GetEnv("PORT", "8080", log),
		ServiceName:       envutil.GetEnv("OTEL_SERVICE_NAME", "classroom-api", log),
		Environment:       envutil.GetEnv("APP_ENV", "development", log),
		Version:           envutil.GetEnv("APP_VERSION", "dev", log),
		JWTSecretKey:      strings.TrimSpace(envutil.GetEnv("AUTH_JWT_SECRET", "", log)),
		JWTIssuer:         strings.TrimSpace(envutil.GetEnv("AUTH_JWT_ISSUER", "", log)),
		ImporterSecret:    envutil.GetEnv("IMPORTER_SECRET", "", log),
		AllowedOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", nil),
		GuideFetchTimeout: envutil.Duration("GUIDE_FETCH_TIMEOUT", 10*time.Second),
		MetricsAddr:       envutil.GetEnv("METRICS_ADDR", ":9090", log),
	}
}
