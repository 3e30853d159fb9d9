package rig

import "testing"

func TestNextAddress(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		universe int
		want     int
	}{
		{name: "empty rig", universe: 1, want: 1},
		{
			name:     "empty universe",
			lines:    []Line{testLine(1, 2, 1, 10, 1, "A", 1)},
			universe: 1,
			want:     1,
		},
		{
			name:     "after single line",
			lines:    []Line{testLine(1, 1, 1, 18, 4, "A", 1)},
			universe: 1,
			want:     73,
		},
		{
			name: "after highest end not last added",
			lines: []Line{
				testLine(1, 1, 200, 10, 1, "A", 1),
				testLine(2, 1, 1, 10, 1, "A", 1),
			},
			universe: 1,
			want:     210,
		},
		{
			name:     "line ends at 512",
			lines:    []Line{testLine(1, 1, 505, 8, 1, "A", 1)},
			universe: 1,
			want:     1,
		},
		{
			name:     "ends at 511",
			lines:    []Line{testLine(1, 1, 1, 1, 511, "A", 1)},
			universe: 1,
			want:     512,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextAddress(tt.lines, tt.universe); got != tt.want {
				t.Errorf("NextAddress() = %d, want %d", got, tt.want)
			}
		})
	}
}
