package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used in tests and when no database is
// configured. A single mutex guards both maps so application and ledger
// writes stay atomic.
type MemoryRepo struct {
	mu      sync.RWMutex
	apps    map[string]Application
	entries map[string]HistoryEntry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		apps:    make(map[string]Application),
		entries: make(map[string]HistoryEntry),
	}
}

func (r *MemoryRepo) Create(_ context.Context, app Application, initial HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if !existing.Archived && existing.CandidateID == app.CandidateID && existing.OfferID == app.OfferID {
			return ErrDuplicate
		}
	}
	r.apps[app.ID] = app
	r.entries[initial.ID] = initial
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) List(_ context.Context, filter ListFilter) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var apps []Application
	for _, app := range r.apps {
		if app.Archived && !filter.IncludeArchived {
			continue
		}
		if filter.CandidateID != "" && app.CandidateID != filter.CandidateID {
			continue
		}
		if filter.OfferID != "" && app.OfferID != filter.OfferID {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ID < apps[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(apps) {
			return nil, nil
		}
		apps = apps[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(apps) {
		apps = apps[:filter.Limit]
	}
	return apps, nil
}

func (r *MemoryRepo) UpdateStatus(_ context.Context, id string, status Status, entry HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	r.apps[id] = app
	r.entries[entry.ID] = entry
	return nil
}

func (r *MemoryRepo) SetArchived(_ context.Context, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return ErrNotFound
	}
	app.Archived = archived
	r.apps[id] = app
	return nil
}

func (r *MemoryRepo) History(_ context.Context, applicationID string) ([]HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []HistoryEntry
	for _, entry := range r.entries {
		if entry.ApplicationID == applicationID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ChangedAt.Equal(entries[j].ChangedAt) {
			return entries[i].ChangedAt.Before(entries[j].ChangedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func (r *MemoryRepo) GetEntry(_ context.Context, entryID string) (HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return HistoryEntry{}, ErrNotFound
	}
	return entry, nil
}

func (r *MemoryRepo) UpdateEntry(_ context.Context, entry HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return ErrNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *MemoryRepo) DeleteEntry(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entryID]; !ok {
		return ErrNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func (r *MemoryRepo) CountEntries(_ context.Context, applicationID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, entry := range r.entries {
		if entry.ApplicationID == applicationID {
			count++
		}
	}
	return count, nil
}
