package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "po number with separators", input: "PO-AEG-GA001", want: "POAEGGA001"},
		{name: "lower case", input: "po-aeg-ga001", want: "POAEGGA001"},
		{name: "embedded spaces", input: " CTR 2024 / 001 ", want: "CTR2024001"},
		{name: "already canonical", input: "POAEGGA001", want: "POAEGGA001"},
		{name: "empty", input: "", want: ""},
		{name: "only separators", input: "--//__..", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.input))
		})
	}
}

func TestNormalizeTokenIdempotent(t *testing.T) {
	inputs := []string{"PO-AEG-GA001", "inv_2024.001", "Acme  Manufacturing"}
	for _, in := range inputs {
		once := NormalizeToken(in)
		assert.Equal(t, once, NormalizeToken(once))
	}
}

func TestNormalizeForScoring(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "Acme  Manufacturing", want: "ACME MANUFACTURING"},
		{name: "drops separators", input: "PO-AEG-GA001", want: "POAEGGA001"},
		{name: "trims edges", input: "  Acme Corp  ", want: "ACME CORP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeForScoring(tt.input))
		})
	}
}
