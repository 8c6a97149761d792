package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpdateStatusCommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	entry := HistoryEntry{
		ID:            "entry-1",
		ApplicationID: "app-1",
		Status:        StatusInReview,
		ActorID:       "recruiter-1",
		Note:          "Application moved to review",
		ChangedAt:     time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status").
		WithArgs("IN_REVIEW", "app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO status_history").
		WithArgs(entry.ID, entry.ApplicationID, "IN_REVIEW", entry.ActorID, entry.Note, entry.ChangedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.UpdateStatus(context.Background(), "app-1", StatusInReview, entry); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusRollsBackWhenLedgerInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	entry := HistoryEntry{ID: "entry-1", ApplicationID: "app-1", Status: StatusInReview, ChangedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status").
		WithArgs("IN_REVIEW", "app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO status_history").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if err := repo.UpdateStatus(context.Background(), "app-1", StatusInReview, entry); err == nil {
		t.Fatal("expected error when the ledger insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusUnknownApplication(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status").
		WithArgs("IN_REVIEW", "app-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.UpdateStatus(context.Background(), "app-missing", StatusInReview, HistoryEntry{ID: "entry-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateRejectsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	app := Application{ID: "app-1", CandidateID: "cand-1", OfferID: "offer-1", Status: StatusSubmitted, AppliedAt: time.Now().UTC()}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("cand-1", "offer-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), app, HistoryEntry{ID: "entry-1"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListFiltersArchived(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	appliedAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "candidate_id", "offer_id", "status", "archived", "cover_letter", "resume_key", "applied_at"}).
		AddRow("app-1", "cand-1", "offer-1", "SUBMITTED", false, "", "", appliedAt)
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE archived = FALSE AND candidate_id").
		WithArgs("cand-1").
		WillReturnRows(rows)

	apps, err := repo.List(context.Background(), ListFilter{CandidateID: "cand-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != "app-1" {
		t.Fatalf("apps = %+v", apps)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
