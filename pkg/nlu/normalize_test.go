package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteDates(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			"show trips in the last 2 months",
			"show trips in the DATE_SUB(NOW(), INTERVAL 2 MONTH)",
		},
		{
			"vehicles from the past 10 days",
			"vehicles from the DATE_SUB(NOW(), INTERVAL 10 DAY)",
		},
		{
			"dispatches from 3 weeks ago",
			"dispatches DATE_SUB(NOW(), INTERVAL 3 WEEK)",
		},
		{
			"Last 1 year of trips",
			"DATE_SUB(NOW(), INTERVAL 1 YEAR) of trips",
		},
		{"no dates here", "no dates here"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RewriteDates(tt.in), tt.in)
	}
}

func TestRewriteDatesIsIdempotent(t *testing.T) {
	once := RewriteDates("trips in the last 6 months and from 2 days ago")
	assert.Equal(t, once, RewriteDates(once))
}

func TestIsGibberish(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"@@@ ##$$ %%!!", true},
		{"hello", true},
		{"show all trips", false},
		{"how many vehicles entered today", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGibberish(tt.in), tt.in)
	}
}

func TestIsBooleanQuestion(t *testing.T) {
	assert.True(t, IsBooleanQuestion("Is the vehicle still inside"))
	assert.True(t, IsBooleanQuestion("has MH12AB1234 left the plant"))
	assert.False(t, IsBooleanQuestion("show all trips"))
	assert.False(t, IsBooleanQuestion(""))
}

func TestIsCountQuestion(t *testing.T) {
	assert.True(t, IsCountQuestion("How many vehicles entered today"))
	assert.True(t, IsCountQuestion("what is the number of trips this week"))
	assert.False(t, IsCountQuestion("show me the trips this week"))
}

func TestAnalyze(t *testing.T) {
	a := Analyze("how many vehicles entered today")
	assert.False(t, a.Gibberish)
	assert.False(t, a.Boolean)
	assert.True(t, a.Count)
}
