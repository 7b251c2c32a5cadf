package llm

import (
	"context"
	"errors"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{NewTransient("op", errors.New("rate limited")), true},
		{NewPermanent("op", errors.New("bad key")), false},
		{context.DeadlineExceeded, true},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("read: connection reset by peer"), true},
		{errors.New("request timeout"), true},
		{errors.New("invalid request payload"), false},
	}

	for _, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransient("complete", inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to unwrap")
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(Config{Provider: ""}); p != nil || err != nil {
		t.Errorf("empty provider must disable interpretation, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}

	p, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("expected openai provider, got %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "OLLAMA"})
	if err != nil || p == nil || p.Name() != "ollama" {
		t.Errorf("expected case-insensitive ollama provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "bedrock"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestConfigTimeout_NeverZero(t *testing.T) {
	if d := (Config{}).timeout(); d != DefaultTimeout {
		t.Errorf("zero timeout must fall back to default, got %v", d)
	}
}
