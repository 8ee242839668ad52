package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"zynlepay/pkg/provider/zynle"
)

type AppCfg struct{ Env, Port, LogLevel string }

type ZynlePayCfg struct {
	MerchantID string
	APIID      string
	APIKey     string
	ServiceID  string
	Channel    string
	Sandbox    bool
	BaseURL    string
	Timeout    time.Duration
}

type RetryCfg struct {
	Attempts int
	Delay    time.Duration
}

type SecurityCfg struct {
	APIToken string // guards /api/v1; empty disables the API
}

type Cfg struct {
	App      AppCfg
	ZynlePay ZynlePayCfg
	Retry    RetryCfg
	Sec      SecurityCfg
}

// Load reads .env (if present) and the process environment. Variables
// already set in the environment win over .env entries.
func Load() (Cfg, error) {
	_ = godotenv.Load(".env")
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "sandbox")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ZYNLEPAY_SERVICE_ID", zynle.DefaultServiceID)
	v.SetDefault("ZYNLEPAY_SANDBOX", true)
	v.SetDefault("ZYNLEPAY_BASE_URL", "")
	v.SetDefault("ZYNLEPAY_TIMEOUT_SEC", 30)
	v.SetDefault("STATUS_RETRY_ATTEMPTS", 3)
	v.SetDefault("STATUS_RETRY_DELAY_MS", 2000)
	v.SetDefault("API_TOKEN", "")
	return v
}

func fromViper(v *viper.Viper) (Cfg, error) {
	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		ZynlePay: ZynlePayCfg{
			MerchantID: strings.TrimSpace(v.GetString("ZYNLEPAY_MERCHANT_ID")),
			APIID:      strings.TrimSpace(v.GetString("ZYNLEPAY_API_ID")),
			APIKey:     strings.TrimSpace(v.GetString("ZYNLEPAY_API_KEY")),
			ServiceID:  strings.TrimSpace(v.GetString("ZYNLEPAY_SERVICE_ID")),
			Channel:    strings.TrimSpace(v.GetString("ZYNLEPAY_CHANNEL")),
			Sandbox:    v.GetBool("ZYNLEPAY_SANDBOX"),
			BaseURL:    strings.TrimSpace(v.GetString("ZYNLEPAY_BASE_URL")),
			Timeout:    time.Duration(v.GetInt("ZYNLEPAY_TIMEOUT_SEC")) * time.Second,
		},
		Retry: RetryCfg{
			Attempts: v.GetInt("STATUS_RETRY_ATTEMPTS"),
			Delay:    time.Duration(v.GetInt("STATUS_RETRY_DELAY_MS")) * time.Millisecond,
		},
		Sec: SecurityCfg{
			APIToken: strings.TrimSpace(v.GetString("API_TOKEN")),
		},
	}

	if cfg.ZynlePay.Timeout <= 0 {
		return Cfg{}, fmt.Errorf("ZYNLEPAY_TIMEOUT_SEC must be positive")
	}
	if cfg.Retry.Attempts < 1 {
		return Cfg{}, fmt.Errorf("STATUS_RETRY_ATTEMPTS must be at least 1")
	}
	if cfg.Retry.Delay < 0 {
		return Cfg{}, fmt.Errorf("STATUS_RETRY_DELAY_MS cannot be negative")
	}
	return cfg, nil
}

// ClientConfig converts the gateway settings for zynle.New, which does the
// credential validation.
func (c Cfg) ClientConfig() zynle.Config {
	z := c.ZynlePay
	return zynle.Config{
		MerchantID: z.MerchantID,
		APIID:      z.APIID,
		APIKey:     z.APIKey,
		ServiceID:  z.ServiceID,
		Channel:    z.Channel,
		Sandbox:    z.Sandbox,
		BaseURL:    z.BaseURL,
		Timeout:    z.Timeout,
	}
}
