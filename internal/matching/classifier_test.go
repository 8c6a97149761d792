package matching

import "testing"

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		overall int
		want    Level
	}{
		{100, LevelExcellent},
		{85, LevelExcellent},
		{84, LevelGood},
		{70, LevelGood},
		{69, LevelFair},
		{50, LevelFair},
		{49, LevelPoor},
		{0, LevelPoor},
	}
	for _, tc := range cases {
		level, descriptor := Classify(tc.overall)
		if level != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.overall, level, tc.want)
		}
		if descriptor == "" {
			t.Fatalf("Classify(%d) returned empty descriptor", tc.overall)
		}
	}
}

func TestClassifyDescriptorsDiffer(t *testing.T) {
	seen := map[string]Level{}
	for _, overall := range []int{90, 75, 55, 10} {
		level, descriptor := Classify(overall)
		if prev, ok := seen[descriptor]; ok {
			t.Fatalf("levels %s and %s share descriptor %q", prev, level, descriptor)
		}
		seen[descriptor] = level
	}
}
