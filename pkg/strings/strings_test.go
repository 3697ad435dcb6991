package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuoted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"double quoted", `"hello"`, true},
		{"single quoted", `'hello'`, true},
		{"mismatched quotes", `"hello'`, false},
		{"unquoted", `hello`, false},
		{"single character", `"`, false},
		{"empty quoted pair", `""`, true},
		{"empty string", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuoted(tt.in))
		})
	}
}

func TestUnQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"mismatched quotes left unchanged", `"hello'`, `"hello'`},
		{"unquoted left unchanged", `hello`, "hello"},
		{"empty quoted pair", `""`, ""},
		{"inner quote preserved", `"it's fine"`, "it's fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnQuote(tt.in))
		})
	}
}
