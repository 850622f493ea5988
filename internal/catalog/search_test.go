package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name   string
		owner  *string
		userID string
		want   bool
	}{
		{name: "global exercise", owner: nil, userID: "u1", want: true},
		{name: "own private exercise", owner: strPtr("u1"), userID: "u1", want: true},
		{name: "someone else's private exercise", owner: strPtr("u2"), userID: "u1", want: false},
		{name: "private exercise and empty user", owner: strPtr("u2"), userID: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.owner, tt.userID))
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		variant  *string
		query    string
		want     bool
	}{
		{name: "empty query matches", exercise: "Squat", query: "", want: true},
		{name: "blank query matches", exercise: "Squat", query: "   ", want: true},
		{name: "exercise substring", exercise: "Back Squat", query: "squat", want: true},
		{name: "case insensitive", exercise: "back squat", query: "BACK", want: true},
		{name: "no match without variant", exercise: "Squat", query: "dead", want: false},
		{name: "variant name matches", exercise: "Squat", variant: strPtr("Deadlift Hybrid"), query: "dead", want: true},
		{name: "neither matches", exercise: "Squat", variant: strPtr("Front"), query: "dead", want: false},
		{name: "surrounding spaces trimmed", exercise: "Bench Press", query: "  press ", want: true},
		{name: "unicode folding", exercise: "ÜBUNG", query: "übung", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.exercise, tt.variant, tt.query))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%squat%", LikePattern(" Squat "))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%a\\b%`, LikePattern(`a\b`))
	assert.Equal(t, "%strasse%", LikePattern("Straße"))
	assert.Equal(t, "%écarté%", LikePattern("ÉCARTÉ"))
}
