package mood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMoodValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "valid value", raw: "5", want: 5},
		{name: "low value", raw: "1", want: 1},
		{name: "empty falls back to neutral", raw: "", want: 3},
		{name: "garbage falls back to neutral", raw: "happy", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMoodValue(tt.raw))
		})
	}
}

func TestBuildSeries_ReversesToOldestFirst(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Newest first, as the repository returns them.
	logs := []*Log{
		{MoodValue: 4, CreatedAt: base.AddDate(0, 0, 2)},
		{MoodValue: 2, CreatedAt: base.AddDate(0, 0, 1)},
		{MoodValue: 5, CreatedAt: base},
	}

	series := BuildSeries(logs)

	assert.Equal(t, []string{"10 Mar", "11 Mar", "12 Mar"}, series.Labels)
	assert.Equal(t, []int{5, 2, 4}, series.Values)
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil)

	assert.Empty(t, series.Labels)
	assert.Empty(t, series.Values)
	assert.NotNil(t, series.Labels, "chart payload should serialize as empty arrays, not null")
}
