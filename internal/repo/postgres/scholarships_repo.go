package postgres

import (
	"context"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
	"github.com/globescholar/scholarhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScholarshipsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewScholarshipsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ScholarshipsRepo {
	return &ScholarshipsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ScholarshipsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ScholarshipsRepo) Create(ctx context.Context, userID string, req scholarship.CreateRequest) (scholarship.Saved, error) {
	s := scholarship.NewFromCreateRequest(userID, req)

	err := r.observe("scholarships.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO saved_scholarships (id, user_id, name, provider, deadline, url, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, s.UserID, s.Name, s.Provider, s.Deadline, s.URL, s.CreatedAt,
		)
		return execErr
	})

	if err != nil {
		return scholarship.Saved{}, err
	}

	return s, nil
}

// ListByUser returns the owner's bookmarks, newest first. The id tiebreak
// keeps the order stable when two rows share a created_at.
func (r *ScholarshipsRepo) ListByUser(ctx context.Context, userID string) ([]scholarship.Saved, error) {
	var out []scholarship.Saved

	err := r.observe("scholarships.list_by_user", func() error {
		rows, queryErr := r.pool.Query(ctx,
			`SELECT id, user_id, name, provider, deadline, url, created_at
			 FROM saved_scholarships
			 WHERE user_id = $1
			 ORDER BY created_at DESC, id DESC`,
			userID,
		)

		if queryErr != nil {
			return queryErr
		}

		defer rows.Close()

		out = make([]scholarship.Saved, 0)

		for rows.Next() {
			var s scholarship.Saved

			scanErr := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Provider, &s.Deadline, &s.URL, &s.CreatedAt)

			if scanErr != nil {
				return scanErr
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes one bookmark scoped to its owner. A row owned by someone
// else and a missing row both come back as ErrNotFound.
func (r *ScholarshipsRepo) Delete(ctx context.Context, userID, id string) error {
	var tag int64

	err := r.observe("scholarships.delete", func() error {
		res, execErr := r.pool.Exec(ctx,
			`DELETE FROM saved_scholarships WHERE id = $1 AND user_id = $2`,
			id, userID,
		)

		if execErr != nil {
			return execErr
		}

		tag = res.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if tag == 0 {
		return scholarship.ErrNotFound
	}

	return nil
}
