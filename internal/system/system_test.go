package system

import (
	"math"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		rate string
		want float64
	}{
		{"30/1", 30.0},
		{"30000/1001", 29.97002997},
		{"25", 25.0},
		{"24000/1001", 23.976023976},
	}

	for _, tt := range tests {
		got, err := ParseFrameRate(tt.rate)
		if err != nil {
			t.Errorf("ParseFrameRate(%q) failed: %v", tt.rate, err)
			continue
		}
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("ParseFrameRate(%q) = %f, want %f", tt.rate, got, tt.want)
		}
	}
}

func TestParseFrameRateInvalid(t *testing.T) {
	for _, rate := range []string{"", "abc", "30/0", "x/y"} {
		if _, err := ParseFrameRate(rate); err == nil {
			t.Errorf("ParseFrameRate(%q) should fail", rate)
		}
	}
}
