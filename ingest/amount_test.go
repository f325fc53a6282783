package ingest

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       any
		want     float64
		fallback bool
	}{
		{"2,56,675.96", 256675.96, false},
		{"2,566,675.96", 2566675.96, false},
		{"25,66,675.96", 2566675.96, false},
		{" 1200 ", 1200, false},
		{"12.5 kg", 12.5, false},
		{"-3", -3, false},
		{float64(42.5), 42.5, false},
		{7, 7, false},
		{"", 0, true},
		{nil, 0, true},
		{"abc", 0, true},
		{"-", 0, true},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		if got.Value != tt.want || got.Fallback != tt.fallback {
			t.Errorf("ParseAmount(%#v) = %+v, want {%v %v}", tt.in, got, tt.want, tt.fallback)
		}
	}
}
