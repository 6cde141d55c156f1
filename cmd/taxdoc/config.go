package main

import (
	"errors"
	"io"
	"net/url"
	"os"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/gemini"
	"github.com/fwojciec/taxdoc/goquery"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.yaml.in/yaml/v3"
)

// Config holds settings read from the optional YAML config file.
type Config struct {
	ContainerID  string  `yaml:"container_id"`
	TableClass   string  `yaml:"table_class"`
	Database     string  `yaml:"database"`
	Model        string  `yaml:"model"`
	Concurrency  int     `yaml:"concurrency"`
	RateLimit    float64 `yaml:"rate_limit"`
	SummarizeURL string  `yaml:"summarize_url"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		ContainerID: goquery.DefaultContainerID,
		TableClass:  goquery.DefaultTableClass,
		Model:       gemini.DefaultModel,
		Concurrency: 4,
		RateLimit:   1.0,
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "config file %q not found", path)
		}
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "invalid config file %q: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config values.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ContainerID, validation.Required),
		validation.Field(&c.TableClass, validation.Required),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
		validation.Field(&c.SummarizeURL, validation.By(httpURL)),
	)
	if err != nil {
		return taxdoc.Errorf(taxdoc.EINVALID, "invalid config: %v", err)
	}
	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_is_http_url", "must be an http or https URL")
	}
	return nil
}
