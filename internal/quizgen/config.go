package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated quiz; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars truncates long documents before prompting.
	MaxContentChars int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoicesValidator{},
			&DistributionValidator{},
			&DuplicateValidator{},
		},
		MaxAttempts:     2,
		MaxTokens:       4096,
		Temperature:     0.4,
		MaxContentChars: 60_000,
	}
}
