package overrides

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Erokhin-Danila/fstec-threat-mapping/internal/assert"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/timezone"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/overrides/db"

	"github.com/google/uuid"
)

// Store keeps manual decisions and a history of runs between
// invocations.
type Store struct {
	db     *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
	now    func() time.Time
}

// NewStore wraps a database that already has db.Schema applied.
func NewStore(database *sql.DB) Store {
	assert.NotNil(database, "database")
	return Store{
		db:     database,
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		now:    timezone.Now,
	}
}

// Open applies db.Schema to database and returns a store over it.
func Open(ctx context.Context, database *sql.DB) (Store, error) {
	_, err := database.ExecContext(ctx, db.Schema)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Add records (or replaces) the decision for override.OldID.
func (s Store) Add(ctx context.Context, override mapper.Override) error {
	if override.OldID == "" || override.NewID == "" {
		return fmt.Errorf("override needs both an old and a new id, got %q -> %q", override.OldID, override.NewID)
	}
	return s.qry.UpsertOverride(ctx, db.UpsertOverrideParams{
		OldID:     override.OldID,
		NewID:     override.NewID,
		UpdatedAt: s.now().Unix(),
	})
}

// Delete removes the decision for oldID, it reports whether one existed.
func (s Store) Delete(ctx context.Context, oldID string) (bool, error) {
	n, err := s.qry.DeleteOverride(ctx, oldID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every decision ordered by old id.
func (s Store) List(ctx context.Context) ([]mapper.Override, error) {
	rows, err := s.qry.ListOverrides(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mapper.Override, len(rows))
	for i, r := range rows {
		out[i] = mapper.Override{OldID: r.OldID, NewID: r.NewID}
	}
	return out, nil
}

// Import adds every override in a single transaction, later entries
// replace earlier ones for the same old id.
func (s Store) Import(ctx context.Context, overrides []mapper.Override) error {
	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	updatedAt := s.now().Unix()
	for _, o := range overrides {
		err := txqry.UpsertOverride(ctx, db.UpsertOverrideParams{
			OldID:     o.OldID,
			NewID:     o.NewID,
			UpdatedAt: updatedAt,
		})
		if err != nil {
			return err
		}
	}
	return commit()
}

type Run struct {
	ID           string
	StartedAt    time.Time
	Threshold    float64
	TopK         int
	OldCount     int
	NewCount     int
	Auto         int
	ManualReview int
	NoMatch      int
}

// RecordRun stores run, assigning it an id when it has none.
func (s Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	err := s.qry.CreateRun(ctx, db.CreateRunParams{
		ID:           run.ID,
		StartedAt:    run.StartedAt.Unix(),
		Threshold:    run.Threshold,
		TopK:         int64(run.TopK),
		OldCount:     int64(run.OldCount),
		NewCount:     int64(run.NewCount),
		Auto:         int64(run.Auto),
		ManualReview: int64(run.ManualReview),
		NoMatch:      int64(run.NoMatch),
	})
	return run, err
}

// ListRuns returns at most limit runs, newest first.
func (s Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.qry.ListRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]Run, len(rows))
	for i, r := range rows {
		out[i] = Run{
			ID:           r.ID,
			StartedAt:    time.Unix(r.StartedAt, 0).In(timezone.Location),
			Threshold:    r.Threshold,
			TopK:         int(r.TopK),
			OldCount:     int(r.OldCount),
			NewCount:     int(r.NewCount),
			Auto:         int(r.Auto),
			ManualReview: int(r.ManualReview),
			NoMatch:      int(r.NoMatch),
		}
	}
	return out, nil
}
