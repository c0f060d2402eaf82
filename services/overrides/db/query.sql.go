// Queries are written by hand in sqlc's output form. Each constant must
// match its block in query.sql.

package db

import (
	"context"
)

const createRun = `-- name: CreateRun :exec
insert into run(
    id, started_at, threshold, top_k, old_count, new_count,
    auto, manual_review, no_match
) values (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateRunParams struct {
	ID           string
	StartedAt    int64
	Threshold    float64
	TopK         int64
	OldCount     int64
	NewCount     int64
	Auto         int64
	ManualReview int64
	NoMatch      int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun,
		arg.ID,
		arg.StartedAt,
		arg.Threshold,
		arg.TopK,
		arg.OldCount,
		arg.NewCount,
		arg.Auto,
		arg.ManualReview,
		arg.NoMatch,
	)
	return err
}

const deleteOverride = `-- name: DeleteOverride :execrows
delete from override where old_id = ?
`

func (q *Queries) DeleteOverride(ctx context.Context, oldID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteOverride, oldID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listOverrides = `-- name: ListOverrides :many
select old_id, new_id, updated_at from override
order by old_id asc
`

func (q *Queries) ListOverrides(ctx context.Context) ([]Override, error) {
	rows, err := q.db.QueryContext(ctx, listOverrides)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Override
	for rows.Next() {
		var i Override
		if err := rows.Scan(&i.OldID, &i.NewID, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRuns = `-- name: ListRuns :many
select id, started_at, threshold, top_k, old_count, new_count, auto, manual_review, no_match from run
order by started_at desc
limit ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Run
	for rows.Next() {
		var i Run
		if err := rows.Scan(
			&i.ID,
			&i.StartedAt,
			&i.Threshold,
			&i.TopK,
			&i.OldCount,
			&i.NewCount,
			&i.Auto,
			&i.ManualReview,
			&i.NoMatch,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertOverride = `-- name: UpsertOverride :exec
insert into override(old_id, new_id, updated_at) values (?, ?, ?)
on conflict (old_id) do update set
    new_id = excluded.new_id,
    updated_at = excluded.updated_at
`

type UpsertOverrideParams struct {
	OldID     string
	NewID     string
	UpdatedAt int64
}

func (q *Queries) UpsertOverride(ctx context.Context, arg UpsertOverrideParams) error {
	_, err := q.db.ExecContext(ctx, upsertOverride, arg.OldID, arg.NewID, arg.UpdatedAt)
	return err
}
