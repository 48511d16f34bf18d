package lexical

import (
	"context"
	"sync"
	"testing"

	"github.com/aescanero/qaserve/pkg/domain"
)

func TestEngine_Predict(t *testing.T) {
	tests := []struct {
		name     string
		query    domain.QAInput
		topK     int
		maxLen   int
		wantText []string
	}{
		{
			name:     "sky color",
			query:    domain.QAInput{Question: "What color is the sky?", Context: "The sky is blue."},
			topK:     1,
			maxLen:   32,
			wantText: []string{"blue"},
		},
		{
			name:     "capital",
			query:    domain.QAInput{Question: "What is the capital of France?", Context: "Paris is the capital of France. Berlin is in Germany."},
			topK:     1,
			maxLen:   32,
			wantText: []string{"Paris"},
		},
		{
			name:     "skips leading stopwords",
			query:    domain.QAInput{Question: "When was the Eiffel Tower built?", Context: "The Eiffel Tower was built in 1889 for the World's Fair."},
			topK:     1,
			maxLen:   32,
			wantText: []string{"1889 for the World's Fair"},
		},
		{
			name:     "answer length capped",
			query:    domain.QAInput{Question: "When was the Eiffel Tower built?", Context: "The Eiffel Tower was built in 1889 for the World's Fair."},
			topK:     1,
			maxLen:   1,
			wantText: []string{"1889"},
		},
		{
			name:     "best sentence wins",
			query:    domain.QAInput{Question: "Who wrote Hamlet the play?", Context: "Hamlet is long. Shakespeare wrote Hamlet, the play."},
			topK:     2,
			maxLen:   32,
			wantText: []string{"Shakespeare", "long"},
		},
		{
			name:     "no overlap",
			query:    domain.QAInput{Question: "Who painted the Mona Lisa?", Context: "The sky is blue."},
			topK:     1,
			maxLen:   32,
			wantText: []string{},
		},
		{
			name:     "empty context",
			query:    domain.QAInput{Question: "What color is the sky?", Context: ""},
			topK:     1,
			maxLen:   32,
			wantText: []string{},
		},
		{
			name:     "question without content words",
			query:    domain.QAInput{Question: "What is it?", Context: "It is a bird."},
			topK:     1,
			maxLen:   32,
			wantText: []string{},
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Predict(context.Background(), []domain.QAInput{tt.query}, tt.topK, tt.maxLen)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Predict() returned %d result lists, want 1", len(got))
			}
			if len(got[0]) != len(tt.wantText) {
				t.Fatalf("Predict() = %+v, want texts %q", got[0], tt.wantText)
			}
			for i, c := range got[0] {
				if c.Text != tt.wantText[i] {
					t.Errorf("candidate %d text = %q, want %q", i, c.Text, tt.wantText[i])
				}
				if tt.query.Context[c.Start:c.End] != c.Text {
					t.Errorf("candidate %d offsets [%d:%d] do not match text %q", i, c.Start, c.End, c.Text)
				}
				if c.Score <= 0 || c.Score > 1 {
					t.Errorf("candidate %d score = %v, want in (0, 1]", i, c.Score)
				}
			}
		})
	}
}

func TestEngine_PredictBatch(t *testing.T) {
	queries := []domain.QAInput{
		{Question: "What color is the sky?", Context: "The sky is blue."},
		{Question: "What color is grass?", Context: "Grass is green."},
	}

	got, err := NewEngine().Predict(context.Background(), queries, 1, 32)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(got) != 2 || got[0][0].Text != "blue" || got[1][0].Text != "green" {
		t.Errorf("Predict() = %+v", got)
	}
}

func TestEngine_PredictInvalidParams(t *testing.T) {
	engine := NewEngine()
	q := []domain.QAInput{{Question: "q", Context: "c"}}

	if _, err := engine.Predict(context.Background(), q, 0, 32); err == nil {
		t.Error("Predict() with topK 0 error = nil, want error")
	}
	if _, err := engine.Predict(context.Background(), q, 1, 0); err == nil {
		t.Error("Predict() with max length 0 error = nil, want error")
	}
}

func TestEngine_PredictCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Predict(ctx, []domain.QAInput{{Question: "q", Context: "c"}}, 1, 32)
	if err == nil {
		t.Error("Predict() on cancelled context error = nil, want error")
	}
}

func TestEngine_ConcurrentPredict(t *testing.T) {
	engine := NewEngine()
	q := []domain.QAInput{{Question: "What color is the sky?", Context: "The sky is blue."}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Predict(context.Background(), q, 1, 32)
			if err != nil || len(got[0]) != 1 || got[0][0].Text != "blue" {
				t.Errorf("Predict() = %+v, %v", got, err)
			}
		}()
	}
	wg.Wait()
}
