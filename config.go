package apimanager

import (
	"fmt"

	"github.com/kbukum/apimanager/config"
	"github.com/kbukum/apimanager/reachability"
	"github.com/kbukum/apimanager/validation"
)

const defaultName = "apimanager"

// Config configures a Manager built with NewFromConfig.
//
//	name: billing-client
//	debug: true
//	locale: de_DE
//	servers:
//	  api: https://api.example.com/v1
//	reachability:
//	  interval: 5s
//	  probe_address: api.example.com:443
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Locale overrides the environment locale for Accept-Language.
	Locale string `yaml:"locale" mapstructure:"locale"`
	// Servers maps server names to base URLs.
	Servers map[string]string `yaml:"servers" mapstructure:"servers" validate:"dive,keys,required,endkeys,required,http_url"`
	// Reachability configures the connectivity monitor.
	Reachability reachability.Config `yaml:"reachability" mapstructure:"reachability"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Reachability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// LoadConfig reads the configuration of the named service with config.Load,
// then applies defaults and validates it.
func LoadConfig(serviceName string, opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("apimanager: invalid config: %w", err)
	}
	return &cfg, nil
}
