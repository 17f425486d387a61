package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendationForWait(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		level   WaitLevel
		color   string
	}{
		{"zero wait", 0, WaitLevelLow, "green"},
		{"low boundary", 10, WaitLevelLow, "green"},
		{"just above low", 10.1, WaitLevelModerate, "yellow"},
		{"moderate boundary", 25, WaitLevelModerate, "yellow"},
		{"just above moderate", 26, WaitLevelBusy, "orange"},
		{"busy boundary", 45, WaitLevelBusy, "orange"},
		{"very busy", 46, WaitLevelVeryBusy, "red"},
		{"long wait", 120, WaitLevelVeryBusy, "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecommendationForWait(tt.minutes)
			assert.Equal(t, tt.level, rec.Level)
			assert.Equal(t, tt.color, rec.Color)
			assert.NotEmpty(t, rec.Message)
		})
	}
}
