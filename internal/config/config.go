package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // none|starttls|tls
	SkipVerifyTLS bool
	From          string
	FromName      string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

// MailtrapConfig selects the Mailtrap send API when SMTP is not configured.
type MailtrapConfig struct {
	APIURL   string
	Token    string
	From     string
	FromName string
}

func (c MailtrapConfig) Enabled() bool { return c.APIURL != "" && c.Token != "" && c.From != "" }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Addr    string
	BaseURL string

	// Payment intent backend, e.g. https://calcrew.myosport.co/api/v1/
	APIBaseURL     string
	PublishableKey string
	StripeSecret   string
	WalletEnabled  bool
	VenmoBaseURL   string

	SessionSecret []byte
	CookieName    string
	CookieSecure  bool
	SessionTTL    time.Duration
	ChargeTimeout time.Duration

	StoreDriver string // memory|redis|mysql
	DBDSN       string
	Redis       RedisConfig

	SMTP     SMTPConfig
	Mailtrap MailtrapConfig
}

const (
	defaultAPIBaseURL     = "https://calcrew.myosport.co/api/v1/"
	defaultPublishableKey = "pk_test_replace_me"
)

// Load reads .env when present (production uses real env vars) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	dur := func(k string, def time.Duration) time.Duration {
		v := env(k, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", k, v))
			return def
		}
		return d
	}
	boolean := func(k string, def bool) bool {
		v := env(k, "")
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid bool %q", k, v))
			return def
		}
		return b
	}
	integer := func(k string, def int) int {
		v := env(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid int %q", k, v))
			return def
		}
		return n
	}

	cfg := Config{
		Addr:           env("ADDR", ":8080"),
		BaseURL:        strings.TrimRight(env("BASE_URL", "http://localhost:8080"), "/"),
		APIBaseURL:     env("API_BASE_URL", defaultAPIBaseURL),
		PublishableKey: env("STRIPE_PUBLISHABLE_KEY", defaultPublishableKey),
		StripeSecret:   env("STRIPE_SECRET_KEY", ""),
		WalletEnabled:  boolean("WALLET_ENABLED", true),
		VenmoBaseURL:   env("VENMO_BASE_URL", "https://venmo.com/pay"),
		SessionSecret:  []byte(env("SESSION_SECRET", "")),
		CookieName:     env("SESSION_COOKIE", "calcrew_checkout"),
		CookieSecure:   boolean("COOKIE_SECURE", false),
		SessionTTL:     dur("SESSION_TTL", 30*time.Minute),
		ChargeTimeout:  dur("CHARGE_TIMEOUT", 30*time.Second),
		StoreDriver:    strings.ToLower(env("STORE_DRIVER", "memory")),
		DBDSN:          env("DB_DSN", ""),
		Redis: RedisConfig{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       integer("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:          env("SMTP_HOST", ""),
			Port:          env("SMTP_PORT", "1025"),
			User:          env("SMTP_USER", ""),
			Pass:          env("SMTP_PASS", ""),
			TLSMode:       strings.ToLower(env("SMTP_TLS_MODE", "none")),
			SkipVerifyTLS: boolean("SMTP_SKIP_VERIFY", false),
			From:          env("SMTP_FROM", ""),
			FromName:      env("SMTP_FROM_NAME", "CalCrew"),
		},
		Mailtrap: MailtrapConfig{
			APIURL:   env("MAILTRAP_API_URL", ""),
			Token:    env("MAILTRAP_API_TOKEN", ""),
			From:     env("EMAIL_FROM", ""),
			FromName: env("EMAIL_FROM_NAME", "CalCrew"),
		},
	}

	if len(cfg.SessionSecret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}

	switch cfg.StoreDriver {
	case "memory", "redis":
	case "mysql":
		dsn, err := NormalizeMySQLDSN(cfg.DBDSN)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.DBDSN = dsn
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver))
	}

	switch cfg.SMTP.TLSMode {
	case "none", "starttls", "tls":
	default:
		errs = append(errs, fmt.Errorf("SMTP_TLS_MODE: unknown mode %q", cfg.SMTP.TLSMode))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NormalizeMySQLDSN validates dsn and forces the options the session store relies on.
func NormalizeMySQLDSN(dsn string) (string, error) {
	if strings.TrimSpace(dsn) == "" {
		return "", errors.New("DB_DSN is required for STORE_DRIVER=mysql")
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("DB_DSN: %w", err)
	}
	mc.ParseTime = true
	if mc.Loc == nil || mc.Loc == time.Local {
		mc.Loc = time.UTC
	}
	return mc.FormatDSN(), nil
}

// UsesMockPayments reports whether no processor secret is configured.
func (c Config) UsesMockPayments() bool { return c.StripeSecret == "" }
