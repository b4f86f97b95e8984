package combos

import (
	"reflect"
	"testing"
)

func TestPairKey_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Шут", "Маг"},
		{"a", "b"},
		{" Солнце ", "Луна"},
	}
	for _, p := range pairs {
		if PairKey(p[0], p[1]) != PairKey(p[1], p[0]) {
			t.Errorf("PairKey(%q, %q) != PairKey(%q, %q)", p[0], p[1], p[1], p[0])
		}
	}
}

func TestPairKey_TrimsNames(t *testing.T) {
	if got := PairKey("  Маг ", "Шут"); got != "Маг|Шут" {
		t.Fatalf("PairKey = %q, want %q", got, "Маг|Шут")
	}
}

func TestSplitCombinationKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want int
		out  []string
	}{
		{"pipe", "Шут|Маг", 2, []string{"Шут", "Маг"}},
		{"pipe with spaces", " Шут | Маг ", 2, []string{"Шут", "Маг"}},
		{"comma", "Шут,Маг", 2, []string{"Шут", "Маг"}},
		{"whitespace", "Шут Маг", 2, []string{"Шут", "Маг"}},
		{"three names", "a|b|c", 3, []string{"a", "b", "c"}},
		{"wrong count", "a|b|c", 2, nil},
		{"empty", "", 2, nil},
		{"single name", "Шут", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCombinationKey(tt.key, tt.want)
			if !reflect.DeepEqual(got, tt.out) {
				t.Errorf("SplitCombinationKey(%q, %d) = %v, want %v", tt.key, tt.want, got, tt.out)
			}
		})
	}
}

func TestSplitCombinationKey_DelimiterPriority(t *testing.T) {
	// A key containing both "|" and "," splits on "|" first; the comma stays
	// inside the part.
	got := SplitCombinationKey("a,x|b", 2)
	want := []string{"a,x", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitCombinationKey = %v, want %v", got, want)
	}
}

func TestSplitCombinationKey_FallsThroughOnCountMismatch(t *testing.T) {
	// "|" yields three parts when two are wanted, so the comma strategy gets
	// a turn; it is absent, and whitespace yields a single part. No match.
	if got := SplitCombinationKey("a|b|c", 2); got != nil {
		t.Fatalf("SplitCombinationKey = %v, want nil", got)
	}
}
