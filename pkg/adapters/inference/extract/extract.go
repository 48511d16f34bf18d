// Package extract holds the prompt and response handling shared by the
// model-backed inference engines. Models are asked to copy answer spans
// verbatim from the context; anything they invent is discarded.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aescanero/qaserve/pkg/domain"
)

// SystemPrompt instructs the model to behave as an extractive reader
const SystemPrompt = `You are an extractive question answering model.
Answer the question using only a span copied verbatim from the context.
Reply with JSON only, in the form {"answers":[{"text":"<span>","score":<0..1>}]}.
Order answers by confidence. Reply {"answers":[]} when the context does not contain the answer.`

// BuildPrompt renders the user message for one query
func BuildPrompt(query domain.QAInput, topK, maxAnswerLength int) string {
	return fmt.Sprintf("Return at most %d answers of at most %d words each.\n\nContext:\n%s\n\nQuestion: %s",
		topK, maxAnswerLength, query.Context, query.Question)
}

type response struct {
	Answers []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"answers"`
}

// Parse turns a model reply into ranked candidates located in context.
// Spans missing from the context or longer than maxAnswerLength words are
// dropped.
func Parse(raw, context string, topK, maxAnswerLength int) ([]domain.AnswerCandidate, error) {
	body := strings.TrimSpace(raw)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var resp response
	if err := json.Unmarshal([]byte(body[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model reply: %w", err)
	}

	candidates := make([]domain.AnswerCandidate, 0, len(resp.Answers))
	for _, a := range resp.Answers {
		text := strings.TrimSpace(a.Text)
		if text == "" || len(strings.Fields(text)) > maxAnswerLength {
			continue
		}

		offset, ok := locate(context, text)
		if !ok {
			continue
		}

		candidates = append(candidates, domain.AnswerCandidate{
			Text:  context[offset : offset+len(text)],
			Score: clamp(a.Score),
			Start: offset,
			End:   offset + len(text),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	return candidates, nil
}

// locate finds text in context, falling back to a case-insensitive match
// when lowering keeps byte offsets stable.
func locate(context, text string) (int, bool) {
	if i := strings.Index(context, text); i >= 0 {
		return i, true
	}

	lowerContext := strings.ToLower(context)
	lowerText := strings.ToLower(text)
	if len(lowerContext) != len(context) || len(lowerText) != len(text) {
		return 0, false
	}

	if i := strings.Index(lowerContext, lowerText); i >= 0 {
		return i, true
	}
	return 0, false
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
