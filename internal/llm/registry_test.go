package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProvider struct{ name string }

func (p *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "ok", nil
}

func (p *stubProvider) CompleteStream(ctx context.Context, prompt string, fn func(chunk string) error) error {
	return fn("ok")
}

func (p *stubProvider) GetProviderName() string { return p.name }

func TestRegisterAndNewProvider(t *testing.T) {
	RegisterProvider("stub", func() (Provider, error) {
		return &stubProvider{name: "stub"}, nil
	})

	p, err := NewProvider("stub")
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.GetProviderName() != "stub" {
		t.Errorf("GetProviderName() = %q", p.GetProviderName())
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("no_such_provider")
	if err == nil {
		t.Fatal("expected error for unregistered provider")
	}
	if !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("error = %v", err)
	}
}

func TestNewProviderFactoryError(t *testing.T) {
	boom := errors.New("missing api key")
	RegisterProvider("broken", func() (Provider, error) {
		return nil, boom
	})

	_, err := NewProvider("broken")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want factory error", err)
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("429")
	perr := &ProviderError{Provider: "stub", Code: ErrCodeRateLimit, Message: "slow down", Err: inner}

	if !errors.Is(perr, inner) {
		t.Error("Unwrap does not expose the inner error")
	}
	if !strings.Contains(perr.Error(), "slow down") || !strings.Contains(perr.Error(), "429") {
		t.Errorf("Error() = %q", perr.Error())
	}

	var target *ProviderError
	if !errors.As(error(perr), &target) {
		t.Error("errors.As failed for *ProviderError")
	}
}
