// Package settings loads process-level settings from the environment.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "LINTEL_"

// Settings holds everything that is not part of a lint configuration
// document. Command-line flags override these values.
type Settings struct {
	CachePath string `env:"CACHE_PATH" envDefault:".lintel-cache"`
	NoCache   bool   `env:"NO_CACHE" envDefault:"false"`
	// Jobs of zero means one worker per CPU.
	Jobs int `env:"JOBS" envDefault:"0" validate:"min=0,max=1024"`

	// Configs are sibling configuration documents, merged left to right.
	Configs []string `env:"CONFIG" envSeparator:","`

	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"10s"`

	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
		Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=json text"`
	}
}

// Load reads the optional dotenv files, then the environment. Missing
// dotenv files are ignored.
func Load(dotenv ...string) (*Settings, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}

	for _, path := range dotenv {
		_ = godotenv.Load(path)
	}

	s := &Settings{}

	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return s, nil
}

// Validate validates the settings using struct tags.
func Validate(s *Settings) error {
	if err := validator.New().Struct(s); err != nil {
		return formatValidationError(err)
	}

	if s.RemoteTimeout < time.Millisecond {
		return fmt.Errorf("remote timeout must be at least 1ms")
	}

	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))

	for _, e := range validationErrors {
		switch e.Tag() {
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", e.Field(), e.Tag()))
		}
	}

	return fmt.Errorf("validation errors: %s", strings.Join(messages, "; "))
}
