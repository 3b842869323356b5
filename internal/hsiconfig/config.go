// Package hsiconfig loads and validates the core's runtime
// configuration: which channels are enabled, window/update cadence,
// and cloud upload credentials. Layered via viper so env vars, an
// optional config file, and defaults all merge; no per-field command
// line flags are bound.
package hsiconfig

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/synheart-ai/synheart-core/internal/hsierrors"
)

// WearConfig controls the wearable-channel adapter's declared
// sampling behavior. The core never talks to a wearable SDK directly
// (§1 non-goals); these values are handed to the host app's adapter.
type WearConfig struct {
	EnableHFHRV    bool    `mapstructure:"enable_hf_hrv"`
	EnableCaching  bool    `mapstructure:"enable_caching"`
	SampleRateHz   float64 `mapstructure:"sample_rate_hz"`
}

// PhoneConfig controls the phone-channel adapter's declared behavior.
type PhoneConfig struct {
	EnableMotion        bool    `mapstructure:"enable_motion"`
	EnableScreenState   bool    `mapstructure:"enable_screen_state"`
	EnableAppTracking   bool    `mapstructure:"enable_app_tracking"`
	MotionSensitivity   float64 `mapstructure:"motion_sensitivity"`
}

// BehaviorConfig controls how the behavioral extractor treats events.
type BehaviorConfig struct {
	EnableGestures bool    `mapstructure:"enable_gestures"`
	EnableTyping   bool    `mapstructure:"enable_typing"`
	MinIdleGapS    float64 `mapstructure:"min_idle_gap_s"`
}

// CloudConfig holds upload client credentials and tuning. Required
// fields are validated by Load only when EnableCloudSync is true.
type CloudConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	TenantID       string        `mapstructure:"tenant_id"`
	HMACSecret     string        `mapstructure:"hmac_secret"`
	SubjectID      string        `mapstructure:"subject_id"`
	SubjectType    string        `mapstructure:"subject_type"`
	InstanceID     string        `mapstructure:"instance_id"`
	APIKey         string        `mapstructure:"api_key"`
	OrgID          string        `mapstructure:"org_id"`
	MaxQueueSize   int           `mapstructure:"max_queue_size"`
	BatchSize      int           `mapstructure:"batch_size"`
	UploadInterval time.Duration `mapstructure:"upload_interval"`
	MaxRetries     int           `mapstructure:"max_retries"`
	EnableBacklog  bool          `mapstructure:"enable_backlog"`
}

// ConsentConfig addresses the external consent oracle service; the
// core only needs enough to reach it, never to implement it.
type ConsentConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	AppID      string `mapstructure:"app_id"`
	AppAPIKey  string `mapstructure:"app_api_key"`
	DeviceID   string `mapstructure:"device_id"`
	Platform   string `mapstructure:"platform"`
	UserID     string `mapstructure:"user_id"`
	Region     string `mapstructure:"region"`
}

// Config is the full runtime configuration for an hsicore instance.
type Config struct {
	EnableCloudSync bool           `mapstructure:"enable_cloud_sync"`
	EnableSyniHooks bool           `mapstructure:"enable_syni_hooks"`
	UpdateInterval  time.Duration  `mapstructure:"update_interval"`
	LogLevel        string         `mapstructure:"log_level"`
	Wear            WearConfig     `mapstructure:"wear"`
	Phone           PhoneConfig    `mapstructure:"phone"`
	Behavior        BehaviorConfig `mapstructure:"behavior"`
	Cloud           CloudConfig    `mapstructure:"cloud"`
	Consent         ConsentConfig  `mapstructure:"consent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("enable_cloud_sync", false)
	v.SetDefault("enable_syni_hooks", false)
	v.SetDefault("update_interval", 30*time.Second)
	v.SetDefault("log_level", "info")

	v.SetDefault("wear.enable_hf_hrv", false)
	v.SetDefault("wear.enable_caching", true)
	v.SetDefault("wear.sample_rate_hz", 1.0)

	v.SetDefault("phone.enable_motion", true)
	v.SetDefault("phone.enable_screen_state", true)
	v.SetDefault("phone.enable_app_tracking", false)
	v.SetDefault("phone.motion_sensitivity", 0.5)

	v.SetDefault("behavior.enable_gestures", true)
	v.SetDefault("behavior.enable_typing", true)
	v.SetDefault("behavior.min_idle_gap_s", 1.0)

	v.SetDefault("cloud.base_url", "https://api.synheart.com")
	v.SetDefault("cloud.subject_type", "pseudonymous_user")
	v.SetDefault("cloud.max_queue_size", 100)
	v.SetDefault("cloud.batch_size", 10)
	v.SetDefault("cloud.upload_interval", 5*time.Minute)
	v.SetDefault("cloud.max_retries", 3)
	v.SetDefault("cloud.enable_backlog", true)

	v.SetDefault("consent.platform", "flutter")
}

// Load merges defaults, an optional config file (configPath, skipped
// if empty), and environment variables prefixed HSICORE_ (nested
// keys use "_" in place of ".", e.g. HSICORE_CLOUD_API_KEY) into a
// Config, then validates it.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("hsicore")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &hsierrors.ConfigError{Field: "config_file", Reason: err.Error()}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &hsierrors.ConfigError{Field: "(root)", Reason: err.Error()}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks a Config for the combinations the core cannot run
// without. It is exported so callers that assemble Config
// programmatically (tests, the CLI's mock-adapter mode) can validate
// without going through Load's viper plumbing.
func Validate(cfg Config) error {
	if !cfg.EnableCloudSync {
		return nil
	}

	required := []struct {
		field string
		value string
	}{
		{"cloud.tenant_id", cfg.Cloud.TenantID},
		{"cloud.hmac_secret", cfg.Cloud.HMACSecret},
		{"cloud.subject_id", cfg.Cloud.SubjectID},
		{"cloud.instance_id", cfg.Cloud.InstanceID},
		{"cloud.api_key", cfg.Cloud.APIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return &hsierrors.ConfigError{
				Field:  r.field,
				Reason: "required when enable_cloud_sync is true",
			}
		}
	}
	return nil
}
