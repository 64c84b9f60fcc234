package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	DatabaseFile string `env:"ACCOUNTS_DATABASE_FILE" envDefault:"accounts.db"`
	PepperFile   string `env:"ACCOUNTS_PEPPER_FILE" envDefault:"pepper"`

	// Issuer is the iss claim on every token the service signs.
	Issuer string `env:"ACCOUNTS_ISSUER" envDefault:"parley-accounts"`

	// One signing secret per token kind so kinds cannot cross.
	AccessSecret    string `env:"ACCOUNTS_ACCESS_SECRET,required"`
	RefreshSecret   string `env:"ACCOUNTS_REFRESH_SECRET,required"`
	ChallengeSecret string `env:"ACCOUNTS_CHALLENGE_SECRET,required"`
	ResetSecret     string `env:"ACCOUNTS_RESET_SECRET,required"`

	AccessTTL    time.Duration `env:"ACCOUNTS_ACCESS_TTL" envDefault:"5m"`
	RefreshTTL   time.Duration `env:"ACCOUNTS_REFRESH_TTL" envDefault:"168h"`
	ChallengeTTL time.Duration `env:"ACCOUNTS_CHALLENGE_TTL" envDefault:"10m"`
	ResetTTL     time.Duration `env:"ACCOUNTS_RESET_TTL" envDefault:"1h"`

	// OTP challenge policy.
	OTPTTL            time.Duration `env:"ACCOUNTS_OTP_TTL" envDefault:"15m"`
	OTPMaxAttempts    int           `env:"ACCOUNTS_OTP_MAX_ATTEMPTS" envDefault:"5"`
	OTPLockDuration   time.Duration `env:"ACCOUNTS_OTP_LOCK_DURATION" envDefault:"15m"`
	OTPResendCooldown time.Duration `env:"ACCOUNTS_OTP_RESEND_COOLDOWN" envDefault:"1m"`

	// ResetBaseURL is the frontend page emailed reset links point at.
	ResetBaseURL string `env:"ACCOUNTS_RESET_BASE_URL" envDefault:"http://localhost:8080/reset-password"`

	// MailMode selects the mail transport: "smtp" or "log". The log mailer
	// writes messages to the service log instead of sending, for dev and e2e.
	MailMode     string `env:"ACCOUNTS_MAIL_MODE" envDefault:"log"`
	SMTPHost     string `env:"ACCOUNTS_SMTP_HOST"`
	SMTPPort     int    `env:"ACCOUNTS_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"ACCOUNTS_SMTP_USERNAME"`
	SMTPPassword string `env:"ACCOUNTS_SMTP_PASSWORD"`
	MailFrom     string `env:"ACCOUNTS_MAIL_FROM" envDefault:"no-reply@parley.chat"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MailMode == "smtp" && cfg.SMTPHost == "" {
		return Config{}, fmt.Errorf("ACCOUNTS_SMTP_HOST is required when ACCOUNTS_MAIL_MODE=smtp")
	}
	return cfg, nil
}

// IsProd reports whether the service runs with production hardening, which
// currently decides whether token cookies carry the Secure attribute.
func (c Config) IsProd() bool { return c.Env == "prod" || c.Env == "production" }
