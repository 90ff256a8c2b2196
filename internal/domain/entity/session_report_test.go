package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageIndependent(t *testing.T) {
	cases := []struct {
		independent, prompted, want int
	}{
		{0, 0, 0},
		{5, 5, 50},
		{1, 2, 33},
		{2, 1, 67},
		{1, 7, 13},
		{7, 1, 88},
		{10, 0, 100},
		{0, 4, 0},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, PercentageIndependent(c.independent, c.prompted),
			"PercentageIndependent(%d,%d)", c.independent, c.prompted)
	}
}

func TestPercentageIndependent_MatchesHalfUpRounding(t *testing.T) {
	for i := 0; i <= 40; i++ {
		for p := 0; p <= 40; p++ {
			if i+p == 0 {
				continue
			}
			want := int(math.Floor(100*float64(i)/float64(i+p) + 0.5))
			assert.Equalf(t, want, PercentageIndependent(i, p), "i=%d p=%d", i, p)
		}
	}
}

func TestABAData_Recompute(t *testing.T) {
	data := ABAData{IndependentTrials: 3, PromptedTrials: 1, PercentageIndependent: 12}
	data.Recompute()
	assert.Equal(t, 75, data.PercentageIndependent)
}
