package domain

import "context"

// NoAnswerSentinel is the literal the generation prompt asks the model to
// reply with when the context does not hold the answer. It is returned to
// callers untouched.
const NoAnswerSentinel = "[NO_ANSWER]"

// AnswerGenerator produces an answer to a question grounded on a context.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, contextText string) (string, error)
}

// KeywordExtractor extracts search keywords from free text.
// A model reply that cannot be parsed yields an empty slice, not an error.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}
