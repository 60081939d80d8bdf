package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. The LLM API key is not
// required here; commands that summarize check it through RequireLLM so
// history browsing works without credentials.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateSummarizer(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// RequireLLM reports a configuration error when no API key is available.
func (c *Config) RequireLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigRelativePath
	}
	return fmt.Errorf("llm.api_key is required. Set GEMINI_API_KEY (or NOTESUM_API_KEY) or edit %s (create with 'notesum config init')", defaultPath)
}

func (c *Config) validateLLM() error {
	parsed, err := url.Parse(c.LLM.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("llm.base_url must be an absolute URL, got %q", c.LLM.BaseURL)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.RetryAttempts > 10 {
		return errors.New("llm.retry_attempts must be between 1 and 10")
	}
	return nil
}

func (c *Config) validateSummarizer() error {
	s := c.Summarizer
	if s.MinLength > s.MaxLength {
		return errors.New("summarizer.min_length must not exceed summarizer.max_length")
	}
	if s.DefaultLength < s.MinLength || s.DefaultLength > s.MaxLength {
		return fmt.Errorf("summarizer.default_length must be between %d and %d", s.MinLength, s.MaxLength)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"llm.timeout_seconds":            c.LLM.TimeoutSeconds,
		"llm.retry_attempts":             c.LLM.RetryAttempts,
		"ocr.timeout_seconds":            c.OCR.TimeoutSeconds,
		"server.request_timeout_seconds": c.Server.RequestTimeoutSeconds,
		"watch.debounce_millis":          c.Watch.DebounceMillis,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
