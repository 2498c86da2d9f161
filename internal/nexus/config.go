package nexus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ErrCodeInvalidType   = "CONFIG_INVALID_TYPE"
	ErrCodeRead          = "CONFIG_READ_FAILED"
	ErrCodeDefaults      = "CONFIG_DEFAULTS_FAILED"
	ErrCodeValidation    = "CONFIG_VALIDATION_FAILED"
	ErrCodeSecurityCheck = "CONFIG_SECURITY_CHECK_FAILED"
)

// ConfigError carries a stable code alongside the underlying cause
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Validatable is implemented by module configs. The loader calls Validate
// on every nested struct that has it.
type Validatable interface {
	Validate() error
}

// Environment is implemented by the root config to switch on the secret
// checks that only make sense outside development.
type Environment interface {
	IsProduction() bool
}

type Loader struct {
	fileName        string
	onlyEnvironment bool
	validate        *validator.Validate
	weakSecrets     []string
}

type LoaderOption func(*Loader)

// WithFileName reads the file first; environment variables still win
func WithFileName(fileName string) LoaderOption {
	return func(l *Loader) { l.fileName = fileName }
}

func WithOnlyEnvironment() LoaderOption {
	return func(l *Loader) { l.onlyEnvironment = true }
}

// WithWeakSecrets replaces the values a secret field may not contain in
// production
func WithWeakSecrets(values ...string) LoaderOption {
	return func(l *Loader) { l.weakSecrets = values }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fileName:    ".env",
		validate:    validator.New(),
		weakSecrets: []string{"password", "secret", "changeme", "123456", "development"},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load copies defaults into cfg, then overlays the config file when present
// and the environment. Environment variables always win. defaults may be nil.
func (l *Loader) Load(ctx context.Context, cfg, defaults interface{}) error {
	if v := reflect.ValueOf(cfg); v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg)}
	}

	if defaults != nil {
		if err := mergo.Merge(cfg, defaults); err != nil {
			return &ConfigError{Code: ErrCodeDefaults, Message: "failed to apply defaults", Cause: err}
		}
	}

	if err := l.read(cfg); err != nil {
		return &ConfigError{Code: ErrCodeRead, Message: "failed to read configuration", Cause: err}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if env, ok := cfg.(Environment); ok && env.IsProduction() {
		if err := l.checkSecrets(reflect.ValueOf(cfg).Elem(), ""); err != nil {
			return &ConfigError{Code: ErrCodeSecurityCheck, Message: "insecure configuration", Cause: err}
		}
	}

	if err := l.validate.Struct(cfg); err != nil {
		return &ConfigError{Code: ErrCodeValidation, Message: "invalid configuration", Cause: err}
	}
	if err := validateNested(reflect.ValueOf(cfg), ""); err != nil {
		return &ConfigError{Code: ErrCodeValidation, Message: "invalid configuration", Cause: err}
	}
	return nil
}

func (l *Loader) read(cfg interface{}) error {
	if !l.onlyEnvironment && l.fileName != "" {
		if _, err := os.Stat(l.fileName); err == nil {
			return cleanenv.ReadConfig(l.fileName, cfg)
		}
	}
	return cleanenv.ReadEnv(cfg)
}

// validateNested walks struct fields depth first so the innermost failing
// config is named in the error
func validateNested(v reflect.Value, path string) error {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		if err := validateNested(v.Field(i), joinPath(path, t.Field(i).Name)); err != nil {
			return err
		}
	}

	if v.CanAddr() {
		if c, ok := v.Addr().Interface().(Validatable); ok && path != "" {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return nil
}

// checkSecrets rejects empty or guessable values in fields tagged
// `secret:"true"`
func (l *Loader) checkSecrets(v reflect.Value, path string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, sf := v.Field(i), t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := joinPath(path, sf.Name)

		switch {
		case field.Kind() == reflect.Struct:
			if err := l.checkSecrets(field, name); err != nil {
				return err
			}
		case field.Kind() == reflect.String && sf.Tag.Get("secret") == "true":
			if err := l.checkSecret(name, field.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) checkSecret(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be set", name)
	}
	lower := strings.ToLower(value)
	for _, weak := range l.weakSecrets {
		if strings.Contains(lower, weak) {
			return fmt.Errorf("%s looks like a placeholder", name)
		}
	}
	if strings.Count(value, value[:1]) == len(value) || isSequence(value) {
		return fmt.Errorf("%s looks like a placeholder", name)
	}
	return nil
}

// isSequence catches the 1234567890... keys used in local setups
func isSequence(s string) bool {
	if len(s) < 8 {
		return false
	}
	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		if cur != prev+1 && !(prev == '9' && cur == '0') {
			return false
		}
	}
	return true
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// IsValidationError reports whether err came from a failed Validate
func IsValidationError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Code == ErrCodeValidation
}
