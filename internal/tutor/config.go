package tutor

import "time"

// Config tunes the chatbot's model calls.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single Ask including provider retries.
	Timeout time.Duration
}

// DefaultConfig returns the chatbot defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}
