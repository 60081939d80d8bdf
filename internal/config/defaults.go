package config

const (
	defaultDataDir               = "~/.local/share/notesum"
	defaultLogDir                = "~/.local/share/notesum/logs"
	defaultAPIBind               = "127.0.0.1:7490"
	defaultLLMBaseURL            = "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"
	defaultLLMModel              = "gemini-1.5-flash"
	defaultLLMTitle              = "notesum"
	defaultLLMTimeoutSeconds     = 60
	defaultLLMRetryAttempts      = 1
	defaultSummaryLength         = 150
	defaultSummaryMinLength      = 50
	defaultSummaryMaxLength      = 350
	defaultOCRBinary             = "tesseract"
	defaultOCRLanguage           = "eng"
	defaultOCRTimeoutSeconds     = 30
	defaultServerRequestTimeout  = 90
	defaultWatchDebounceMillis   = 250
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultConfigRelativePath    = "~/.config/notesum/config.toml"
	defaultProjectConfigFilename = "notesum.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			RetryAttempts:  defaultLLMRetryAttempts,
		},
		Summarizer: Summarizer{
			DefaultLength: defaultSummaryLength,
			MinLength:     defaultSummaryMinLength,
			MaxLength:     defaultSummaryMaxLength,
		},
		OCR: OCR{
			Binary:         defaultOCRBinary,
			Language:       defaultOCRLanguage,
			TimeoutSeconds: defaultOCRTimeoutSeconds,
		},
		Server: Server{
			RequestTimeoutSeconds: defaultServerRequestTimeout,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounceMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
