package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxesToSachets(t *testing.T) {
	assert.Equal(t, 0, BoxesToSachets(0, 28))
	assert.Equal(t, 28, BoxesToSachets(1, 28))
	assert.Equal(t, 84, BoxesToSachets(3, 28))
	assert.Equal(t, 30, BoxesToSachets(2, 15))
}

func TestSachetsToBoxesExact(t *testing.T) {
	assert.True(t, SachetsToBoxesExact(0, 28).IsZero())
	assert.Equal(t, "0.5", SachetsToBoxesExact(14, 28).String())
	assert.Equal(t, "1", SachetsToBoxesExact(28, 28).String())
	assert.Equal(t, "1.5", SachetsToBoxesExact(42, 28).String())
}

func TestSachetsToBoxesCeil(t *testing.T) {
	tests := []struct {
		name          string
		sachets       int
		sachetsPerBox int
		want          int
	}{
		{name: "Zero", sachets: 0, sachetsPerBox: 28, want: 0},
		{name: "Negative", sachets: -5, sachetsPerBox: 28, want: 0},
		{name: "One", sachets: 1, sachetsPerBox: 28, want: 1},
		{name: "ExactBox", sachets: 28, sachetsPerBox: 28, want: 1},
		{name: "JustOver", sachets: 29, sachetsPerBox: 28, want: 2},
		{name: "TwoBoxes", sachets: 56, sachetsPerBox: 28, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SachetsToBoxesCeil(tt.sachets, tt.sachetsPerBox))
		})
	}
}
