package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// PollIntervalSeconds is how often the incoming-truck list is refreshed
	// from the retail-ops API. 0 disables polling.
	PollIntervalSeconds int `mapstructure:"POLL_INTERVAL_SECONDS" default:"30"`

	// RemoteAPI holds the retail-ops API configuration.
	RemoteAPI RemoteAPIConfig `mapstructure:",squash"`

	// Cache holds the snapshot/search cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Search holds the purchase-order line search configuration.
	Search SearchConfig `mapstructure:",squash"`
}

// RemoteAPIConfig holds connection details for the retail-ops API.
type RemoteAPIConfig struct {
	// URL is the base URL of the retail-ops API.
	URL string `mapstructure:"REMOTE_API_URL" required:"true"`
	// Token is the bearer credential. When empty, requests fall back to the
	// UserID/UserRole header pair.
	Token string `mapstructure:"REMOTE_API_TOKEN"`
	// UserID identifies the submitting user to the remote API.
	UserID string `mapstructure:"REMOTE_USER_ID" default:"demo"`
	// UserRole is the role asserted alongside UserID.
	UserRole string `mapstructure:"REMOTE_USER_ROLE" default:"Purchasing"`
}

// CacheConfig holds cache backend details.
type CacheConfig struct {
	// RedisURL selects the redis backend when set. Empty means the
	// in-process session cache is used instead.
	RedisURL string `mapstructure:"REDIS_URL"`
}

// SearchConfig holds line-search tuning knobs.
type SearchConfig struct {
	// DebounceMillis is how long a search waits for a newer query before firing.
	DebounceMillis int `mapstructure:"SEARCH_DEBOUNCE_MS" default:"250"`
	// CacheTTLSeconds is how long search results are cached per query.
	CacheTTLSeconds int `mapstructure:"SEARCH_CACHE_TTL_SECONDS" default:"30"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
