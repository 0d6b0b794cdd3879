package videosource

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "minutes and seconds",
			input: "PT4M13S",
			want:  253,
		},
		{
			name:  "hours minutes seconds",
			input: "PT1H2M3S",
			want:  3723,
		},
		{
			name:  "seconds only",
			input: "PT45S",
			want:  45,
		},
		{
			name:  "hours only",
			input: "PT2H",
			want:  7200,
		},
		{
			name:  "empty string",
			input: "",
			want:  0,
		},
		{
			name:  "not a duration",
			input: "four minutes",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDuration(tt.input); got != tt.want {
				t.Errorf("parseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
