package inference

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "lexical",
			cfg:      Config{Provider: "lexical"},
			wantName: "lexical",
		},
		{
			name:     "anthropic",
			cfg:      Config{Provider: "anthropic", APIKey: "test-key", RequestTimeout: time.Second},
			wantName: "anthropic",
		},
		{
			name:     "openai",
			cfg:      Config{Provider: "openai", APIKey: "test-key", RequestTimeout: time.Second},
			wantName: "openai",
		},
		{
			name:    "remote engine without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "bert"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = zap.NewNop()

			engine, err := NewEngine(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewEngine() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if got := engine.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
		})
	}
}
