// Package contact delivers contact-form messages through the EmailJS REST API.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const DefaultEndpoint = "https://api.emailjs.com"

var ErrMissingCredentials = errors.New("contact: missing emailjs credentials")

// Config holds EmailJS credentials. YAML supplies the defaults and the
// environment overrides individual fields.
type Config struct {
	ServiceID  string        `yaml:"service_id"  env:"EMAILJS_SERVICE_ID"`
	TemplateID string        `yaml:"template_id" env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string        `yaml:"public_key"  env:"EMAILJS_PUBLIC_KEY"`
	ToEmail    string        `yaml:"to_email"    env:"EMAILJS_TO_EMAIL"`
	Endpoint   string        `yaml:"endpoint"    env:"EMAILJS_ENDPOINT"`
	Timeout    time.Duration `yaml:"timeout"     env:"EMAILJS_TIMEOUT"`
	MaxTries   uint          `yaml:"max_tries"   env:"EMAILJS_MAX_TRIES"`
}

func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("contact: unmarshal config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("contact: parse env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxTries == 0 {
		c.MaxTries = 3
	}
}

func (c Config) Validate() error {
	var missing []string
	if c.ServiceID == "" {
		missing = append(missing, "service_id")
	}
	if c.TemplateID == "" {
		missing = append(missing, "template_id")
	}
	if c.PublicKey == "" {
		missing = append(missing, "public_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
