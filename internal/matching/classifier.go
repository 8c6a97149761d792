package matching

// Level is the discrete classification of an overall match score.
type Level string

const (
	LevelExcellent Level = "EXCELLENT"
	LevelGood      Level = "GOOD"
	LevelFair      Level = "FAIR"
	LevelPoor      Level = "POOR"
)

// Classification thresholds and descriptors are fixed policy, not derived.
var levelThresholds = []struct {
	min        int
	level      Level
	descriptor string
}{
	{85, LevelExcellent, "Excellent match: the candidate's profile closely fits this offer."},
	{70, LevelGood, "Good match: the candidate fits most of the offer's criteria."},
	{50, LevelFair, "Fair match: the candidate fits some criteria but has notable gaps."},
	{0, LevelPoor, "Poor match: the candidate's profile diverges from this offer."},
}

// Classify maps an overall score to its level and descriptor sentence.
func Classify(overall int) (Level, string) {
	for _, t := range levelThresholds {
		if overall >= t.min {
			return t.level, t.descriptor
		}
	}
	last := levelThresholds[len(levelThresholds)-1]
	return last.level, last.descriptor
}
