package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{93.75, "₱93.75"},
		{1000, "₱1000.00"},
		{0, "₱0.00"},
		{0.005, "₱0.01"},
		{187.499, "₱187.50"},
		{-300, "₱-300.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.amount))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 93.75, Round2(93.7500001))
	assert.Equal(t, 0.01, Round2(0.005))
}
