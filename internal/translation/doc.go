// Package translation translates English words into a target language
// through an external provider (OpenAI or Gemini). It runs one request per
// word on a worker pool and can guard a provider with a circuit breaker.
package translation
