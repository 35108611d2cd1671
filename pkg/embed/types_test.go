package embed_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formembed/pkg/embed"
)

func TestParseType(t *testing.T) {
	got, err := embed.ParseType(" Modal ")
	if err != nil {
		t.Fatalf("parse type: %v", err)
	}
	if got != embed.TypeModal {
		t.Fatalf("want %q, got %q", embed.TypeModal, got)
	}

	if _, err := embed.ParseType("sidetab"); !errors.Is(err, embed.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseModalType(t *testing.T) {
	for _, m := range embed.ModalTypes() {
		got, err := embed.ParseModalType(string(m))
		if err != nil {
			t.Fatalf("parse %q: %v", m, err)
		}
		if got != m {
			t.Fatalf("want %q, got %q", m, got)
		}
	}

	if _, err := embed.ParseModalType("bogus"); !errors.Is(err, embed.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
