package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo stores applications in PostgreSQL.
type PGRepo struct {
	db *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

func (r *PGRepo) Create(ctx context.Context, app Application, initial HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND offer_id = $2 AND archived = FALSE)`,
		app.CandidateID, app.OfferID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return ErrDuplicate
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO applications (id, candidate_id, offer_id, status, archived, cover_letter, resume_key, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.CandidateID, app.OfferID, string(app.Status), app.Archived,
		app.CoverLetter, app.ResumeKey, app.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}

	if err := insertEntry(ctx, tx, initial); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, candidate_id, offer_id, status, archived, cover_letter, resume_key, applied_at
		 FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, candidate_id, offer_id, status, archived, cover_letter, resume_key, applied_at FROM applications`)

	var conds []string
	var args []any
	if !filter.IncludeArchived {
		conds = append(conds, "archived = FALSE")
	}
	if filter.CandidateID != "" {
		args = append(args, filter.CandidateID)
		conds = append(conds, fmt.Sprintf("candidate_id = $%d", len(args)))
	}
	if filter.OfferID != "" {
		args = append(args, filter.OfferID)
		conds = append(conds, fmt.Sprintf("offer_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	query.WriteString(" ORDER BY applied_at DESC, id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, entry HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET archived = $1 WHERE id = $2`, archived, id)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) History(ctx context.Context, applicationID string) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, application_id, status, actor_id, note, changed_at
		 FROM status_history WHERE application_id = $1
		 ORDER BY changed_at, id`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var status string
		if err := rows.Scan(&entry.ID, &entry.ApplicationID, &status, &entry.ActorID, &entry.Note, &entry.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Status = Status(status)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PGRepo) GetEntry(ctx context.Context, entryID string) (HistoryEntry, error) {
	var entry HistoryEntry
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, application_id, status, actor_id, note, changed_at
		 FROM status_history WHERE id = $1`, entryID,
	).Scan(&entry.ID, &entry.ApplicationID, &status, &entry.ActorID, &entry.Note, &entry.ChangedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return HistoryEntry{}, ErrNotFound
	}
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("get history entry: %w", err)
	}
	entry.Status = Status(status)
	return entry, nil
}

func (r *PGRepo) UpdateEntry(ctx context.Context, entry HistoryEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE status_history SET status = $1, note = $2 WHERE id = $3`,
		string(entry.Status), entry.Note, entry.ID)
	if err != nil {
		return fmt.Errorf("update history entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update history entry: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteEntry(ctx context.Context, entryID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM status_history WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountEntries(ctx context.Context, applicationID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM status_history WHERE application_id = $1`, applicationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return count, nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, entry HistoryEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO status_history (id, application_id, status, actor_id, note, changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.ApplicationID, string(entry.Status), entry.ActorID, entry.Note, entry.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var status string
	err := row.Scan(&app.ID, &app.CandidateID, &app.OfferID, &status, &app.Archived,
		&app.CoverLetter, &app.ResumeKey, &app.AppliedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	if err != nil {
		return Application{}, fmt.Errorf("scan application: %w", err)
	}
	app.Status = Status(status)
	return app, nil
}
