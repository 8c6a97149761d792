package profiles

import (
	"strings"
	"time"
)

// SkillLevel is a candidate's proficiency or an offer's required level.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "BEGINNER"
	LevelIntermediate SkillLevel = "INTERMEDIATE"
	LevelAdvanced     SkillLevel = "ADVANCED"
	LevelExpert       SkillLevel = "EXPERT"
)

var levelRanks = map[SkillLevel]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// Rank returns the ordinal rank of a level, 1..4. Unknown levels rank 0.
func (l SkillLevel) Rank() int {
	return levelRanks[l]
}

// ParseSkillLevel normalizes a raw level string.
func ParseSkillLevel(raw string) (SkillLevel, bool) {
	level := SkillLevel(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := levelRanks[level]
	return level, ok
}

// ContractType is an employment contract kind.
type ContractType string

const (
	ContractCDI        ContractType = "CDI"
	ContractCDD        ContractType = "CDD"
	ContractFreelance  ContractType = "FREELANCE"
	ContractInternship ContractType = "INTERNSHIP"
	ContractApprentice ContractType = "APPRENTICESHIP"
)

var contractTypes = map[ContractType]bool{
	ContractCDI:        true,
	ContractCDD:        true,
	ContractFreelance:  true,
	ContractInternship: true,
	ContractApprentice: true,
}

// ParseContractType normalizes a raw contract type string.
func ParseContractType(raw string) (ContractType, bool) {
	ct := ContractType(strings.ToUpper(strings.TrimSpace(raw)))
	return ct, contractTypes[ct]
}

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Skill pairs a name with a level. In a candidate profile the level is the
// candidate's proficiency; in an offer it is the required minimum.
type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// CandidateProfile describes what a candidate brings and prefers.
// Mutated only through explicit profile updates.
type CandidateProfile struct {
	ID              string
	Location        string
	Coords          *Coordinates
	ContractTypes   []ContractType // empty means no preference
	ExperienceYears int
	Skills          []Skill // unique by name
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PrefersContract reports whether the candidate accepts the given contract
// type. An empty preference set accepts anything.
func (p CandidateProfile) PrefersContract(ct ContractType) bool {
	if len(p.ContractTypes) == 0 {
		return true
	}
	for _, pref := range p.ContractTypes {
		if pref == ct {
			return true
		}
	}
	return false
}

// SkillNamed returns the candidate's skill with the given name, if present.
// Lookup is case-insensitive.
func (p CandidateProfile) SkillNamed(name string) (Skill, bool) {
	for _, s := range p.Skills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Skill{}, false
}

// JobOffer describes a published position. Immutable once published except by
// its owning recruiter.
type JobOffer struct {
	ID             string
	RecruiterID    string
	Title          string
	Location       string
	Coords         *Coordinates
	ContractType   ContractType
	RequiredSkills []Skill
	ExpectedYears  *int // nil means no expectation
	CreatedAt      time.Time
}
