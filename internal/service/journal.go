package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/google/uuid"
)

// Journal is the append-only ledger of one location. Entries come back newest first.
type Journal interface {
	Append(ctx context.Context, entry model.LedgerEntry) (model.LedgerEntry, error)
	Entries(ctx context.Context) ([]model.LedgerEntry, error)
	Find(ctx context.Context, id string) (model.LedgerEntry, error)
	MarkUndone(ctx context.Context, id string) error
}

type journal struct {
	location string
	repo     repository.LedgerRepository
	clock    func() time.Time
	mu       sync.Mutex
}

func NewJournal(location string, repo repository.LedgerRepository, clock func() time.Time) Journal {
	if clock == nil {
		clock = time.Now
	}
	return &journal{location: location, repo: repo, clock: clock}
}

// newEntryID returns a short random token. Collisions are not checked.
func newEntryID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func (j *journal) Append(ctx context.Context, entry model.LedgerEntry) (model.LedgerEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.repo.Load(ctx, j.location)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("load ledger: %w", err)
	}

	entry.ID = newEntryID()
	entry.Location = j.location
	entry.Timestamp = j.clock()
	entry.Undone = false
	if entry.Target == "" {
		entry.Target = model.TargetReceipt
	}

	next := make([]model.LedgerEntry, 0, len(entries)+1)
	next = append(next, entry)
	next = append(next, entries...)
	if err := j.repo.Replace(ctx, j.location, next); err != nil {
		return model.LedgerEntry{}, fmt.Errorf("save ledger: %w", err)
	}
	return entry, nil
}

func (j *journal) Entries(ctx context.Context) ([]model.LedgerEntry, error) {
	return j.repo.Load(ctx, j.location)
}

func (j *journal) Find(ctx context.Context, id string) (model.LedgerEntry, error) {
	entries, err := j.repo.Load(ctx, j.location)
	if err != nil {
		return model.LedgerEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.LedgerEntry{}, ErrEntryNotFound
}

func (j *journal) MarkUndone(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.repo.Load(ctx, j.location)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	for idx := range entries {
		if entries[idx].ID != id {
			continue
		}
		if entries[idx].Undone {
			return nil
		}
		entries[idx].Undone = true
		return j.repo.Replace(ctx, j.location, entries)
	}
	return ErrEntryNotFound
}
