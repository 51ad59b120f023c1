// Copyright 2026 fanjia1024
// Tests for SOQL string escaping

package salesforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSOQLString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Acme Corp", "Acme Corp"},
		{"single quote", "O'Brien & Sons", `O\'Brien & Sons`},
		{"multiple quotes", "a'b'c", `a\'b\'c`},
		{"backslash", `a\b`, `a\\b`},
		{"backslash then quote", `a\'b`, `a\\\'b`},
		{"injection attempt", "x' OR Name != '", `x\' OR Name != \'`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeSOQLString(tt.in))
		})
	}
}

func TestQuoteSOQLString(t *testing.T) {
	assert.Equal(t, `'Acme'`, QuoteSOQLString("Acme"))
	assert.Equal(t, `'O\'Brien'`, QuoteSOQLString("O'Brien"))
	assert.Equal(t, `''`, QuoteSOQLString(""))
}
