// Package models lists the OpenAI chat models available to the configured
// API key, which can be passed to --model for translation.
package models
