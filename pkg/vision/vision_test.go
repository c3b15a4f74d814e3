package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EstimateCost(t *testing.T) {
	usage := Usage{PromptTokens: 1000, CompletionTokens: 1000}

	tests := []struct {
		name    string
		model   string
		expCost float64
	}{
		{
			name:    "Vision preview rates",
			model:   "gpt-4-vision-preview",
			expCost: 0.04,
		},
		{
			name:    "Gpt-4o rates",
			model:   "gpt-4o",
			expCost: 0.02,
		},
		{
			name:    "Unknown model falls back to gpt-4o rates",
			model:   "some-future-model",
			expCost: 0.02,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expCost, EstimateCost(tt.model, usage), 1e-9)
		})
	}
}
