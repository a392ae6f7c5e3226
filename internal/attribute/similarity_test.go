package attribute

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "john smith", "john smith", 1.0},
		{"containment", "smith", "john smith", 0.9},
		{"containment reversed", "john smith", "smith", 0.9},
		{"empty left", "", "john smith", 0},
		{"empty right", "john smith", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	// michael/michelle share "mich" and "el": 2*6/15.
	if got := ratio("michael", "michelle"); got != 0.8 {
		t.Errorf("ratio = %v, want 0.8", got)
	}
	if got := ratio("abc", "abc"); got != 1.0 {
		t.Errorf("identical ratio = %v, want 1.0", got)
	}
	if got := ratio("abc", "xyz"); got != 0 {
		t.Errorf("disjoint ratio = %v, want 0", got)
	}
}

func TestRatio_Symmetryish(t *testing.T) {
	// Ratcliff-Obershelp is not perfectly symmetric in general, but the
	// score must stay in [0, 1] whichever way it is called.
	pairs := [][2]string{
		{"susan hawkins", "susanne hawke"},
		{"john barrett", "jon barret"},
		{"a", "aaaa"},
	}
	for _, p := range pairs {
		for _, v := range []float64{ratio(p[0], p[1]), ratio(p[1], p[0])} {
			if v < 0 || v > 1 {
				t.Errorf("ratio(%q, %q) = %v out of range", p[0], p[1], v)
			}
		}
	}
}
