package contentgen

// Config holds content generation configuration.
type Config struct {
	MaxTokens   int
	Temperature float64

	// QuizQuestions is the number of questions requested when the caller
	// does not ask for a specific count.
	QuizQuestions int
}

// DefaultConfig returns the default content generation config.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     16384,
		Temperature:   0.4,
		QuizQuestions: 50,
	}
}
