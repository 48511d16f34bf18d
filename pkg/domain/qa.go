package domain

import "fmt"

// Inference parameters applied to every /qa request
const (
	DefaultTopK            = 1
	DefaultMaxAnswerLength = 32
)

// Inquiry is a question/context pair received from a client
type Inquiry struct {
	Question string
	Context  string
}

// QAInput is a single query of an inference batch
type QAInput struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// AnswerCandidate is one ranked answer produced by an inference engine.
// Start and End are byte offsets into the query context.
type AnswerCandidate struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Render returns the human-readable form sent to clients
func (a AnswerCandidate) Render() string {
	return fmt.Sprintf("Answer: %+v", a)
}

// OutcomeKind classifies the result of a single request
type OutcomeKind string

const (
	OutcomeAnswered OutcomeKind = "answered"
	OutcomeNoAnswer OutcomeKind = "no_answer"
	OutcomeFailed   OutcomeKind = "failed"
)

// Outcome is produced once per request and mapped directly to a response
type Outcome struct {
	Kind   OutcomeKind
	Answer AnswerCandidate
	Err    error
}

// Answered builds an outcome carrying the first candidate
func Answered(answer AnswerCandidate) Outcome {
	return Outcome{Kind: OutcomeAnswered, Answer: answer}
}

// NoAnswer builds an outcome for an empty result
func NoAnswer() Outcome {
	return Outcome{Kind: OutcomeNoAnswer}
}

// Failed builds an outcome for an inference failure
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}
