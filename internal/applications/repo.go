package applications

import "context"

// Repo persists applications together with their history ledger. Writes that
// touch both an application and its ledger (Create, UpdateStatus) are atomic:
// either both land or neither does.
type Repo interface {
	Create(ctx context.Context, app Application, initial HistoryEntry) error
	Get(ctx context.Context, id string) (Application, error)
	List(ctx context.Context, filter ListFilter) ([]Application, error)

	// UpdateStatus sets the application status and appends the ledger entry
	// in a single transaction.
	UpdateStatus(ctx context.Context, id string, status Status, entry HistoryEntry) error

	SetArchived(ctx context.Context, id string, archived bool) error

	History(ctx context.Context, applicationID string) ([]HistoryEntry, error)
	GetEntry(ctx context.Context, entryID string) (HistoryEntry, error)
	UpdateEntry(ctx context.Context, entry HistoryEntry) error
	DeleteEntry(ctx context.Context, entryID string) error
	CountEntries(ctx context.Context, applicationID string) (int, error)
}
