package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/RenovaSite/internal/env"
	"github.com/samber/lo"
)

type Config struct {
	Port        string
	ENV         string
	FrontendURL string
	DB          DatabaseConfig
	Minio       MinioConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	RateLimiter RateLimiterConfig
	Mail        MailConfig
	Auth        AuthConfig
	Cors        CorsConfig

	// How long site settings stay in the cache before the next read hits the database.
	SettingsCacheTTL time.Duration
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type AuthConfig struct {
	JWT_SECRET        string
	GoogleOAuthConfig GoogleOAuthConfig
	// Emails promoted to admin when they sign in.
	AdminEmails []string
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type DatabaseConfig struct {
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	DB_SSLMODE   string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
	// Base url objects are served from, e.g. a CDN in front of the bucket.
	// Empty means <scheme>://<endpoint>/<bucket>.
	PUBLIC_URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

type MailConfig struct {
	SEND_GRID  SendGridConfig
	SMTP       SMTPConfig
	FROM_EMAIL string
	// Where contact messages go when site settings have no email.
	CONTACT_TO string
}

type SendGridConfig struct {
	API_KEY string
}

type SMTPConfig struct {
	HOST     string
	PORT     int
	USERNAME string
	PASSWORD string
}

type CorsConfig struct {
	AllowOrigins []string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func (mc MinioConfig) PublicBaseURL() string {
	if mc.PUBLIC_URL != "" {
		return strings.TrimRight(mc.PUBLIC_URL, "/")
	}

	scheme := "http"
	if mc.USE_SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, mc.ENDPOINT, mc.BUCKET)
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS, ignoring case.
func (ac AuthConfig) IsAdminEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && lo.ContainsBy(ac.AdminEmails, func(admin string) bool {
		return strings.EqualFold(strings.TrimSpace(admin), email)
	})
}

func GetConfig() Config {
	rateLimiteTimeFrame := env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute)

	return Config{
		Port:        env.GetString("PORT", "8080"),
		ENV:         env.GetString("ENV", "development"),
		FrontendURL: strings.TrimRight(env.GetString("FRONTEND_URL", "http://localhost:3000"), "/"),
		DB: DatabaseConfig{
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "postgres"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "renova"),
			DB_SSLMODE:   env.GetString("DB_SSLMODE", "disable"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "project-media"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
			PUBLIC_URL: env.GetString("MINIO_PUBLIC_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     env.GetString("REDIS_ADDR", ""),
			Password: env.GetString("REDIS_PASSWORD", ""),
			DB:       env.GetInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL: env.GetString("RABBITMQ_URL", ""),
		},
		SettingsCacheTTL: env.GetDuration("SETTINGS_CACHE_TTL", 10*time.Minute),
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            rateLimiteTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Mail: MailConfig{
			FROM_EMAIL: env.GetString("MAIL_FROM_MAIL", ""),
			CONTACT_TO: env.GetString("MAIL_CONTACT_TO", ""),
			SEND_GRID: SendGridConfig{
				API_KEY: env.GetString("MAIL_SEND_GRID_API_KEY", ""),
			},
			SMTP: SMTPConfig{
				HOST:     env.GetString("MAIL_SMTP_HOST", ""),
				PORT:     env.GetInt("MAIL_SMTP_PORT", 587),
				USERNAME: env.GetString("MAIL_SMTP_USERNAME", ""),
				PASSWORD: env.GetString("MAIL_SMTP_PASSWORD", ""),
			},
		},
		Auth: AuthConfig{
			JWT_SECRET:  env.GetString("AUTH_JWT_SECRET", ""),
			AdminEmails: env.GetStringSlice("ADMIN_EMAILS", nil),
			GoogleOAuthConfig: GoogleOAuthConfig{
				ClientID:     env.GetString("GOOGLE_OAUTH_CLIENT_ID", ""),
				ClientSecret: env.GetString("GOOGLE_OAUTH_CLIENT_SECRET", ""),
				RedirectURL:  env.GetString("GOOGLE_OAUTH_CALLBACK", "http://localhost:8080/api/v1/oauth/google/callback"),
			},
		},
		Cors: CorsConfig{
			AllowOrigins: env.GetStringSlice("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
	}
}
