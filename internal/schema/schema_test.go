package schema

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain content", raw: "Buy milk", want: "Buy milk"},
		{name: "leading and trailing whitespace stripped", raw: "  Buy milk \n", want: "Buy milk"},
		{name: "internal whitespace preserved", raw: " a \t b ", want: "a \t b"},
		{name: "empty", raw: "", wantErr: ErrContentEmpty},
		{name: "whitespace only", raw: " \t\n ", wantErr: ErrContentEmpty},
		{name: "exactly max length", raw: strings.Repeat("a", MaxContentLength), want: strings.Repeat("a", MaxContentLength)},
		{name: "one over max length", raw: strings.Repeat("a", MaxContentLength+1), wantErr: ErrContentTooLong},
		{name: "multibyte runes counted as characters", raw: strings.Repeat("я", MaxContentLength), want: strings.Repeat("я", MaxContentLength)},
		{name: "multibyte one over max", raw: strings.Repeat("я", MaxContentLength+1), wantErr: ErrContentTooLong},
		{name: "padding does not count toward limit", raw: "  " + strings.Repeat("a", MaxContentLength) + "  ", want: strings.Repeat("a", MaxContentLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateContent(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateContent_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		trimmed := strings.TrimSpace(raw)

		got, err := ValidateContent(raw)

		switch {
		case trimmed == "":
			if err == nil || !strings.Contains(err.Error(), "empty") {
				t.Fatalf("expected empty-content error for %q, got %v", raw, err)
			}
		case utf8.RuneCountInString(trimmed) > MaxContentLength:
			if err == nil || !strings.Contains(err.Error(), "exceed") {
				t.Fatalf("expected too-long error, got %v", err)
			}
		default:
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", raw, err)
			}
			if got != trimmed {
				t.Fatalf("expected %q, got %q", trimmed, got)
			}
		}
	})
}

func TestValidateContent_TrimIsFixpoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")

		first, err := ValidateContent(raw)
		if err != nil {
			t.Skip("invalid input")
		}

		second, err := ValidateContent(first)
		if err != nil {
			t.Fatalf("validated content must validate again: %v", err)
		}
		if second != first {
			t.Fatalf("validation is not idempotent: %q then %q", first, second)
		}
	})
}
