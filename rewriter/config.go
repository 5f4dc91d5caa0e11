package rewriter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AuthConfig holds the authentication part of a Config
type AuthConfig struct {
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// IdentityConfig holds static identity values. When Detect is set, values
// missing here are looked up from the running system.
type IdentityConfig struct {
	IdentityInfo `json:",inline" yaml:",inline"`
	Detect       bool   `json:"detect,omitempty" yaml:"detect,omitempty"`
	Vendor       string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
}

// Config is the file representation of a gateway and its rewrite options
type Config struct {
	// Gateway is the gateway URL; only its host is used.
	Gateway        string          `json:"gateway" yaml:"gateway"`
	Token          string          `json:"token,omitempty" yaml:"token,omitempty"`
	ServiceName    string          `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ServiceID      string          `json:"service_id,omitempty" yaml:"service_id,omitempty"`
	Authentication *AuthConfig     `json:"authentication,omitempty" yaml:"authentication,omitempty"`
	Proxy          *ProxyInfo      `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Identity       *IdentityConfig `json:"identity,omitempty" yaml:"identity,omitempty"`
	// CachePolicy is one of protocol, reload, reload-all, cache-else-load, cache-only.
	CachePolicy string `json:"cache_policy,omitempty" yaml:"cache_policy,omitempty"`
	// Timeout is a Go duration string such as "30s".
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// LoadConfigFromFile loads configuration from a file (JSON or YAML)
func LoadConfigFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadConfig(file)
}

// LoadConfig reads a YAML or JSON configuration from r
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, &config); err != nil {
		config = Config{}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config as YAML or JSON: %w", err)
		}
	}

	return &config, nil
}

// SaveConfigToFile saves configuration to a file
func SaveConfigToFile(config *Config, filename string, format string) error {
	var data []byte
	var err error

	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(config)
	case "json":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filename, data, 0600)
}

// ValidateConfig performs comprehensive configuration validation
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}

	gateway, err := url.Parse(config.Gateway)
	if err != nil || gateway.Hostname() == "" {
		return fmt.Errorf("gateway %q: %w", config.Gateway, ErrInvalidGatewayURL)
	}

	if config.Authentication != nil {
		if _, err := ParseAuthType(config.Authentication.Type); err != nil {
			return err
		}
	}
	if config.Proxy != nil && config.Proxy.Host == "" {
		return fmt.Errorf("proxy host cannot be empty")
	}
	if _, err := ParseCachePolicy(config.CachePolicy); err != nil {
		return err
	}
	if config.Timeout != "" {
		d, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
	}

	return nil
}

// Options validates the configuration and converts it into rewrite Options
func (c *Config) Options() (Options, error) {
	if err := ValidateConfig(c); err != nil {
		return Options{}, err
	}

	b := NewBuilder().
		WithToken(c.Token).
		WithService(c.ServiceName, c.ServiceID)

	if c.Authentication != nil {
		authType, _ := ParseAuthType(c.Authentication.Type)
		b.WithAuthentication(authType, c.Authentication.Key, c.Authentication.Prefix)
	}
	if c.Proxy != nil {
		b.WithProxy(c.Proxy.Host)
	}
	if c.Identity != nil {
		var provider IdentityProvider = c.Identity.IdentityInfo
		if c.Identity.Detect {
			provider = ChainIdentity(provider, SystemIdentity(c.Identity.Vendor))
		}
		b.WithIdentity(provider)
	}

	policy, _ := ParseCachePolicy(c.CachePolicy)
	b.WithCachePolicy(policy)

	if c.Timeout != "" {
		d, _ := time.ParseDuration(c.Timeout)
		b.WithTimeout(d)
	}

	return b.Build(), nil
}
