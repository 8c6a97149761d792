package matching

import (
	"math"

	"recruit-backend/internal/profiles"
)

// Scoring policy constants. Weights sum to 1.0; subscores and the overall
// score are always within [0,100].
const (
	weightSkills     = 0.40
	weightLocation   = 0.20
	weightContract   = 0.15
	weightExperience = 0.25

	// neutralScore is used when a dimension has nothing to compare:
	// no required skills, unresolved coordinates, or no experience
	// expectation on the offer.
	neutralScore = 50

	// contractBaseline applies when the offer's contract type is outside
	// the candidate's preferred set. Contract type is a soft preference,
	// so the baseline is low but not zero.
	contractBaseline = 20

	// experiencePenaltyPerYear is deducted for each full year the
	// candidate falls short of the offer's expectation, down to 0.
	experiencePenaltyPerYear = 25
)

// distanceBands maps great-circle distance to a location subscore. Bands are
// ordered nearest-first; distances beyond the last band score 0.
var distanceBands = []struct {
	maxKm float64
	score int
}{
	{10, 100},
	{50, 75},
	{150, 50},
	{400, 25},
}

// Subscores are the four independent components of a match.
type Subscores struct {
	Skills       int `json:"skills"`
	Location     int `json:"location"`
	ContractType int `json:"contractType"`
	Experience   int `json:"experience"`
}

// MatchResult is the outcome of scoring one (candidate, offer) pair. It is
// computed fresh on every call and never persisted.
type MatchResult struct {
	Subscores  Subscores `json:"subscores"`
	Overall    int       `json:"overall"`
	Level      Level     `json:"level"`
	Descriptor string    `json:"descriptor"`
}

// ComputeMatch scores how well a candidate fits an offer. Pure and
// deterministic: coordinates must already be resolved on both sides, and no
// I/O happens here.
func ComputeMatch(candidate profiles.CandidateProfile, offer profiles.JobOffer) MatchResult {
	sub := Subscores{
		Skills:       skillsSubscore(candidate, offer),
		Location:     locationSubscore(candidate.Coords, offer.Coords),
		ContractType: contractSubscore(candidate, offer),
		Experience:   experienceSubscore(candidate.ExperienceYears, offer.ExpectedYears),
	}

	weighted := weightSkills*float64(sub.Skills) +
		weightLocation*float64(sub.Location) +
		weightContract*float64(sub.ContractType) +
		weightExperience*float64(sub.Experience)
	overall := int(math.Round(weighted))

	level, descriptor := Classify(overall)

	return MatchResult{
		Subscores:  sub,
		Overall:    overall,
		Level:      level,
		Descriptor: descriptor,
	}
}

// skillsSubscore averages per-required-skill contributions. A candidate
// exceeding a required level is capped at 100, not rewarded further.
func skillsSubscore(candidate profiles.CandidateProfile, offer profiles.JobOffer) int {
	if len(offer.RequiredSkills) == 0 {
		return neutralScore
	}

	total := 0.0
	for _, required := range offer.RequiredSkills {
		reqRank := required.Level.Rank()
		if reqRank == 0 {
			continue
		}
		skill, ok := candidate.SkillNamed(required.Name)
		if !ok {
			continue
		}
		contribution := 100.0 * float64(skill.Level.Rank()) / float64(reqRank)
		if contribution > 100 {
			contribution = 100
		}
		total += contribution
	}
	return int(math.Round(total / float64(len(offer.RequiredSkills))))
}

func locationSubscore(candidate, offer *profiles.Coordinates) int {
	if candidate == nil || offer == nil {
		return neutralScore
	}
	km := distanceKm(*candidate, *offer)
	for _, band := range distanceBands {
		if km <= band.maxKm {
			return band.score
		}
	}
	return 0
}

func contractSubscore(candidate profiles.CandidateProfile, offer profiles.JobOffer) int {
	if candidate.PrefersContract(offer.ContractType) {
		return 100
	}
	return contractBaseline
}

func experienceSubscore(years int, expected *int) int {
	if expected == nil {
		return neutralScore
	}
	if years >= *expected {
		return 100
	}
	score := 100 - (*expected-years)*experiencePenaltyPerYear
	if score < 0 {
		return 0
	}
	return score
}
