package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{name: "already two decimals", amount: 54.00, want: 54.00},
		{name: "rounds up", amount: 15.556, want: 15.56},
		{name: "rounds down", amount: 15.554, want: 15.55},
		{name: "float artifact", amount: 0.1 + 0.2, want: 0.3},
		{name: "accumulated sum", amount: 19.99*3 + 0.000000001, want: 59.97},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.amount), 1e-9)
		})
	}
}
