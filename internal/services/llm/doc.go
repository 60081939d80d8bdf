// Package llm provides a chat-completions client used to summarize notes.
//
// The client targets any OpenAI-compatible endpoint. The default points at
// Google's Gemini compatibility layer, so the same API key issued for Gemini
// works unchanged.
//
// # Entry Points
//
// NewClient: construct a client from Config.
// Client.Generate: send one prompt, receive the model's text.
// Client.HealthCheck: verify the API key and model respond.
//
// # Retry Behaviour
//
// Generate makes a single attempt unless Config.RetryAttempts (or
// WithRetryMaxAttempts) asks for more. When retries are enabled, HTTP
// 408/429/5xx responses, empty completions and network timeouts are retried
// with exponential backoff, honouring Retry-After. Context cancellation
// aborts immediately.
//
// Errors are tagged with services.ErrConfiguration, services.ErrTimeout or
// services.ErrExternalTool so callers can map them to user messages.
package llm
