// Package server exposes the summary store and summarizer over HTTP.
//
// Routes are mounted on a chi router under /api. Every request gets a request
// ID (propagated into log fields as correlation_id), panic recovery and a
// deadline; CORS is enabled only when allowed origins are configured, and a
// bearer token is required when paths.api_token is set.
package server
