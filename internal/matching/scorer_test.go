package matching

import (
	"testing"

	"recruit-backend/internal/profiles"
)

func intPtr(v int) *int { return &v }

func coords(lat, lon float64) *profiles.Coordinates {
	return &profiles.Coordinates{Lat: lat, Lon: lon}
}

func TestSkillsSubscoreAllRequirementsMet(t *testing.T) {
	candidate := profiles.CandidateProfile{
		Skills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelAdvanced},
			{Name: "PostgreSQL", Level: profiles.LevelExpert},
		},
	}
	offer := profiles.JobOffer{
		RequiredSkills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelAdvanced},
			{Name: "PostgreSQL", Level: profiles.LevelIntermediate},
		},
	}

	if got := skillsSubscore(candidate, offer); got != 100 {
		t.Fatalf("skillsSubscore = %d, want 100", got)
	}
}

func TestSkillsSubscorePartial(t *testing.T) {
	// Beginner against an Expert requirement contributes 25; the missing
	// skill contributes 0, so the average over two requirements is 13.
	candidate := profiles.CandidateProfile{
		Skills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelBeginner},
		},
	}
	offer := profiles.JobOffer{
		RequiredSkills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelExpert},
			{Name: "Kubernetes", Level: profiles.LevelIntermediate},
		},
	}

	if got := skillsSubscore(candidate, offer); got != 13 {
		t.Fatalf("skillsSubscore = %d, want 13", got)
	}
}

func TestSkillsSubscoreCaseInsensitiveLookup(t *testing.T) {
	candidate := profiles.CandidateProfile{
		Skills: []profiles.Skill{{Name: "go", Level: profiles.LevelExpert}},
	}
	offer := profiles.JobOffer{
		RequiredSkills: []profiles.Skill{{Name: "Go", Level: profiles.LevelBeginner}},
	}

	// Exceeding the requirement caps at 100 instead of rewarding overshoot.
	if got := skillsSubscore(candidate, offer); got != 100 {
		t.Fatalf("skillsSubscore = %d, want 100", got)
	}
}

func TestSkillsSubscoreNoRequirementsIsNeutral(t *testing.T) {
	if got := skillsSubscore(profiles.CandidateProfile{}, profiles.JobOffer{}); got != neutralScore {
		t.Fatalf("skillsSubscore = %d, want %d", got, neutralScore)
	}
}

func TestLocationSubscoreBands(t *testing.T) {
	// Paris city centre as the offer anchor.
	offer := coords(48.8566, 2.3522)

	cases := []struct {
		name      string
		candidate *profiles.Coordinates
		want      int
	}{
		{"same point", coords(48.8566, 2.3522), 100},
		{"about 8km away", coords(48.9266, 2.3522), 100},
		{"about 40km away", coords(49.2122, 2.3522), 75},
		{"about 120km away", coords(49.9344, 2.3522), 50},
		{"about 300km away", coords(51.5533, 2.3522), 25},
		{"beyond the last band", coords(43.2965, 5.3698), 0},
		{"candidate unresolved", nil, neutralScore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := locationSubscore(tc.candidate, offer); got != tc.want {
				t.Fatalf("locationSubscore = %d, want %d", got, tc.want)
			}
		})
	}

	if got := locationSubscore(coords(48.8566, 2.3522), nil); got != neutralScore {
		t.Fatalf("locationSubscore with unresolved offer = %d, want %d", got, neutralScore)
	}
}

func TestContractSubscore(t *testing.T) {
	candidate := profiles.CandidateProfile{
		ContractTypes: []profiles.ContractType{profiles.ContractCDI, profiles.ContractCDD},
	}

	offerCDI := profiles.JobOffer{ContractType: profiles.ContractCDI}
	if got := contractSubscore(candidate, offerCDI); got != 100 {
		t.Fatalf("contractSubscore preferred = %d, want 100", got)
	}

	offerFreelance := profiles.JobOffer{ContractType: profiles.ContractFreelance}
	if got := contractSubscore(candidate, offerFreelance); got != contractBaseline {
		t.Fatalf("contractSubscore outside preference = %d, want %d", got, contractBaseline)
	}

	// Empty preference set accepts any contract type.
	if got := contractSubscore(profiles.CandidateProfile{}, offerFreelance); got != 100 {
		t.Fatalf("contractSubscore no preference = %d, want 100", got)
	}
}

func TestExperienceSubscore(t *testing.T) {
	cases := []struct {
		name     string
		years    int
		expected *int
		want     int
	}{
		{"meets expectation", 5, intPtr(5), 100},
		{"exceeds expectation", 10, intPtr(5), 100},
		{"one year short", 4, intPtr(5), 75},
		{"three years short", 2, intPtr(5), 25},
		{"far short clamps at zero", 0, intPtr(8), 0},
		{"no expectation is neutral", 0, nil, neutralScore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := experienceSubscore(tc.years, tc.expected); got != tc.want {
				t.Fatalf("experienceSubscore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeMatchWeightsAndRounding(t *testing.T) {
	candidate := profiles.CandidateProfile{
		Coords:          coords(48.8566, 2.3522),
		ContractTypes:   []profiles.ContractType{profiles.ContractCDI},
		ExperienceYears: 4,
		Skills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelAdvanced},
		},
	}
	offer := profiles.JobOffer{
		Coords:        coords(48.8566, 2.3522),
		ContractType:  profiles.ContractCDI,
		ExpectedYears: intPtr(5),
		RequiredSkills: []profiles.Skill{
			{Name: "Go", Level: profiles.LevelAdvanced},
		},
	}

	result := ComputeMatch(candidate, offer)

	want := Subscores{Skills: 100, Location: 100, ContractType: 100, Experience: 75}
	if result.Subscores != want {
		t.Fatalf("Subscores = %+v, want %+v", result.Subscores, want)
	}
	// 0.40*100 + 0.20*100 + 0.15*100 + 0.25*75 = 93.75, rounded to 94.
	if result.Overall != 94 {
		t.Fatalf("Overall = %d, want 94", result.Overall)
	}
	if result.Level != LevelExcellent {
		t.Fatalf("Level = %s, want %s", result.Level, LevelExcellent)
	}
}

func TestComputeMatchIsDeterministic(t *testing.T) {
	candidate := profiles.CandidateProfile{
		ExperienceYears: 2,
		Skills:          []profiles.Skill{{Name: "Go", Level: profiles.LevelIntermediate}},
	}
	offer := profiles.JobOffer{
		ContractType:   profiles.ContractCDD,
		ExpectedYears:  intPtr(3),
		RequiredSkills: []profiles.Skill{{Name: "Go", Level: profiles.LevelExpert}},
	}

	first := ComputeMatch(candidate, offer)
	for i := 0; i < 5; i++ {
		if got := ComputeMatch(candidate, offer); got != first {
			t.Fatalf("ComputeMatch not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestComputeMatchBounds(t *testing.T) {
	empty := ComputeMatch(profiles.CandidateProfile{}, profiles.JobOffer{ContractType: profiles.ContractCDI})
	if empty.Overall < 0 || empty.Overall > 100 {
		t.Fatalf("Overall out of range: %d", empty.Overall)
	}

	hopeless := ComputeMatch(
		profiles.CandidateProfile{
			Coords:        coords(48.8566, 2.3522),
			ContractTypes: []profiles.ContractType{profiles.ContractCDI},
		},
		profiles.JobOffer{
			Coords:         coords(43.2965, 5.3698),
			ContractType:   profiles.ContractFreelance,
			ExpectedYears:  intPtr(10),
			RequiredSkills: []profiles.Skill{{Name: "Rust", Level: profiles.LevelExpert}},
		},
	)
	if hopeless.Overall != contractBaseline*15/100 {
		t.Fatalf("Overall = %d, want %d", hopeless.Overall, contractBaseline*15/100)
	}
	if hopeless.Level != LevelPoor {
		t.Fatalf("Level = %s, want %s", hopeless.Level, LevelPoor)
	}
}
