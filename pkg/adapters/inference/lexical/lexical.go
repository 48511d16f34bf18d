// Package lexical implements an in-process extractive question answering
// engine. It ranks context sentences by their overlap with the question and
// answers with the words of the best sentence that the question does not
// already contain. The engine is stateless and safe for concurrent use.
package lexical

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aescanero/qaserve/pkg/domain"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "by": true, "with": true, "from": true,
	"and": true, "or": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "do": true, "does": true, "did": true, "it": true,
	"its": true, "this": true, "that": true, "as": true, "what": true,
	"which": true, "who": true, "whom": true, "whose": true, "when": true,
	"where": true, "why": true, "how": true, "much": true, "many": true,
}

// Engine is the lexical inference engine
type Engine struct{}

// NewEngine creates a new lexical engine
func NewEngine() *Engine {
	return &Engine{}
}

// Name returns the engine name
func (e *Engine) Name() string {
	return "lexical"
}

// Predict answers every query in the batch
func (e *Engine) Predict(ctx context.Context, queries []domain.QAInput, topK, maxAnswerLength int) ([][]domain.AnswerCandidate, error) {
	if topK < 1 {
		return nil, fmt.Errorf("top-k must be positive, got %d", topK)
	}
	if maxAnswerLength < 1 {
		return nil, fmt.Errorf("max answer length must be positive, got %d", maxAnswerLength)
	}

	results := make([][]domain.AnswerCandidate, len(queries))
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = answer(q, topK, maxAnswerLength)
	}

	return results, nil
}

type token struct {
	word       string
	start, end int
}

func tokenize(text string) []token {
	spans := wordPattern.FindAllStringIndex(text, -1)
	tokens := make([]token, len(spans))
	for i, s := range spans {
		tokens[i] = token{
			word:  strings.ToLower(text[s[0]:s[1]]),
			start: s[0],
			end:   s[1],
		}
	}
	return tokens
}

// sentences groups context tokens, breaking on terminal punctuation or
// newlines between two words.
func sentences(text string, tokens []token) [][]token {
	var out [][]token
	var current []token

	for i, tok := range tokens {
		if i > 0 && strings.ContainsAny(text[tokens[i-1].end:tok.start], ".!?\n") {
			out = append(out, current)
			current = nil
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		out = append(out, current)
	}

	return out
}

func answer(q domain.QAInput, topK, maxAnswerLength int) []domain.AnswerCandidate {
	questionWords := make(map[string]bool)
	contentTerms := make(map[string]bool)
	for _, tok := range tokenize(q.Question) {
		questionWords[tok.word] = true
		if !stopwords[tok.word] {
			contentTerms[tok.word] = true
		}
	}
	if len(contentTerms) == 0 {
		return []domain.AnswerCandidate{}
	}

	type scored struct {
		candidate domain.AnswerCandidate
		order     int
	}
	var ranked []scored

	for n, sentence := range sentences(q.Context, tokenize(q.Context)) {
		overlap := make(map[string]bool)
		for _, tok := range sentence {
			if contentTerms[tok.word] {
				overlap[tok.word] = true
			}
		}
		if len(overlap) == 0 {
			continue
		}

		first, last, ok := span(sentence, questionWords, maxAnswerLength)
		if !ok {
			continue
		}

		ranked = append(ranked, scored{
			candidate: domain.AnswerCandidate{
				Text:  q.Context[first.start:last.end],
				Score: float64(len(overlap)) / float64(len(contentTerms)),
				Start: first.start,
				End:   last.end,
			},
			order: n,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].candidate.Score != ranked[j].candidate.Score {
			return ranked[i].candidate.Score > ranked[j].candidate.Score
		}
		return ranked[i].order < ranked[j].order
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	candidates := make([]domain.AnswerCandidate, len(ranked))
	for i, r := range ranked {
		candidates[i] = r.candidate
	}
	return candidates
}

// span returns the first run of sentence words absent from the question.
// The run starts and ends on a content word and may carry stopwords inside.
func span(sentence []token, questionWords map[string]bool, maxAnswerLength int) (token, token, bool) {
	begin := -1
	for i, tok := range sentence {
		if !questionWords[tok.word] && !stopwords[tok.word] {
			begin = i
			break
		}
	}
	if begin < 0 {
		return token{}, token{}, false
	}

	end := begin
	for i := begin + 1; i < len(sentence) && i-begin < maxAnswerLength; i++ {
		word := sentence[i].word
		if stopwords[word] {
			continue
		}
		if questionWords[word] {
			break
		}
		end = i
	}

	return sentence[begin], sentence[end], true
}
