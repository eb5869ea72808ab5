package llm

// NewOracle creates the configured oracle. OpenAI is the only supported
// backend; swapping the model provider is explicitly out of scope.
func NewOracle(config Config) (Oracle, error) {
	return NewOpenAIOracle(config)
}
