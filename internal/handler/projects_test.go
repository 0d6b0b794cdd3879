package handler

import (
	"reflect"
	"testing"
)

func TestNormalizeTechnologies(t *testing.T) {
	tests := []struct {
		name  string
		techs []string
		want  []string
	}{
		{
			name:  "trims whitespace",
			techs: []string{" Go ", "Postgres"},
			want:  []string{"Go", "Postgres"},
		},
		{
			name:  "drops empties",
			techs: []string{"Go", "", "   ", "Redis"},
			want:  []string{"Go", "Redis"},
		},
		{
			name:  "drops case insensitive duplicates keeping first",
			techs: []string{"Go", "go", "GO", "React"},
			want:  []string{"Go", "React"},
		},
		{
			name:  "empty input",
			techs: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeTechnologies(tt.techs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeTechnologies(%v) = %v, want %v", tt.techs, got, tt.want)
			}
		})
	}
}
