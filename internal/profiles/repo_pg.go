package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a Postgres-backed repo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// GetCandidateProfile fetches one candidate profile by id.
func (r *PGRepo) GetCandidateProfile(ctx context.Context, id string) (CandidateProfile, error) {
	const query = `
SELECT id, location, latitude, longitude, contract_types, experience_years, skills, created_at, updated_at
FROM candidate_profiles
WHERE id = $1`
	var (
		profile       CandidateProfile
		location      sql.NullString
		lat, lon      sql.NullFloat64
		contractsJSON []byte
		skillsJSON    []byte
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&location,
		&lat,
		&lon,
		&contractsJSON,
		&profile.ExperienceYears,
		&skillsJSON,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CandidateProfile{}, ErrNotFound
		}
		return CandidateProfile{}, err
	}
	if location.Valid {
		profile.Location = location.String
	}
	profile.Coords = coordsFromNullable(lat, lon)
	if err := json.Unmarshal(contractsJSON, &profile.ContractTypes); err != nil {
		return CandidateProfile{}, fmt.Errorf("decode contract_types: %w", err)
	}
	if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
		return CandidateProfile{}, fmt.Errorf("decode skills: %w", err)
	}
	return profile, nil
}

// UpsertCandidateProfile inserts or replaces a candidate profile.
func (r *PGRepo) UpsertCandidateProfile(ctx context.Context, profile CandidateProfile) error {
	const query = `
INSERT INTO candidate_profiles (id, location, latitude, longitude, contract_types, experience_years, skills, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    location = EXCLUDED.location,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude,
    contract_types = EXCLUDED.contract_types,
    experience_years = EXCLUDED.experience_years,
    skills = EXCLUDED.skills,
    updated_at = EXCLUDED.updated_at`

	contractsJSON, err := json.Marshal(nonNilContracts(profile.ContractTypes))
	if err != nil {
		return fmt.Errorf("encode contract_types: %w", err)
	}
	skillsJSON, err := json.Marshal(nonNilSkills(profile.Skills))
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	lat, lon := nullableCoords(profile.Coords)
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := profile.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = r.DB.ExecContext(ctx, query,
		profile.ID,
		nullString(profile.Location),
		lat,
		lon,
		contractsJSON,
		profile.ExperienceYears,
		skillsJSON,
		createdAt,
		updatedAt,
	)
	return err
}

// GetJobOffer fetches one job offer by id.
func (r *PGRepo) GetJobOffer(ctx context.Context, id string) (JobOffer, error) {
	const query = `
SELECT id, recruiter_id, title, location, latitude, longitude, contract_type, required_skills, expected_years, created_at
FROM job_offers
WHERE id = $1`
	offer, err := scanOffer(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobOffer{}, ErrNotFound
		}
		return JobOffer{}, err
	}
	return offer, nil
}

// CreateJobOffer inserts a new job offer.
func (r *PGRepo) CreateJobOffer(ctx context.Context, offer JobOffer) error {
	const query = `
INSERT INTO job_offers (id, recruiter_id, title, location, latitude, longitude, contract_type, required_skills, expected_years, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	skillsJSON, err := json.Marshal(nonNilSkills(offer.RequiredSkills))
	if err != nil {
		return fmt.Errorf("encode required_skills: %w", err)
	}

	lat, lon := nullableCoords(offer.Coords)
	var expected sql.NullInt64
	if offer.ExpectedYears != nil {
		expected = sql.NullInt64{Int64: int64(*offer.ExpectedYears), Valid: true}
	}
	createdAt := offer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.DB.ExecContext(ctx, query,
		offer.ID,
		offer.RecruiterID,
		offer.Title,
		nullString(offer.Location),
		lat,
		lon,
		string(offer.ContractType),
		skillsJSON,
		expected,
		createdAt,
	)
	return err
}

// ListJobOffers lists offers, newest first.
func (r *PGRepo) ListJobOffers(ctx context.Context, limit, offset int) ([]JobOffer, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, recruiter_id, title, location, latitude, longitude, contract_type, required_skills, expected_years, created_at
FROM job_offers
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, offer)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (JobOffer, error) {
	var (
		offer      JobOffer
		location   sql.NullString
		lat, lon   sql.NullFloat64
		skillsJSON []byte
		expected   sql.NullInt64
	)
	err := row.Scan(
		&offer.ID,
		&offer.RecruiterID,
		&offer.Title,
		&location,
		&lat,
		&lon,
		&offer.ContractType,
		&skillsJSON,
		&expected,
		&offer.CreatedAt,
	)
	if err != nil {
		return JobOffer{}, err
	}
	if location.Valid {
		offer.Location = location.String
	}
	offer.Coords = coordsFromNullable(lat, lon)
	if err := json.Unmarshal(skillsJSON, &offer.RequiredSkills); err != nil {
		return JobOffer{}, fmt.Errorf("decode required_skills: %w", err)
	}
	if expected.Valid {
		years := int(expected.Int64)
		offer.ExpectedYears = &years
	}
	return offer, nil
}

func coordsFromNullable(lat, lon sql.NullFloat64) *Coordinates {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &Coordinates{Lat: lat.Float64, Lon: lon.Float64}
}

func nullableCoords(coords *Coordinates) (sql.NullFloat64, sql.NullFloat64) {
	if coords == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: coords.Lat, Valid: true}, sql.NullFloat64{Float64: coords.Lon, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nonNilContracts(in []ContractType) []ContractType {
	if in == nil {
		return []ContractType{}
	}
	return in
}

func nonNilSkills(in []Skill) []Skill {
	if in == nil {
		return []Skill{}
	}
	return in
}

var _ Repo = (*PGRepo)(nil)
