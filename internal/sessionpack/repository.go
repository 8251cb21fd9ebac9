package sessionpack

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNoRemainingSessions = errors.New("no remaining sessions")

const packColumns = `id, user_id, total_count, service_count, used_count, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID, totalCount, serviceCount int) (*SessionPack, error) {
	p := &SessionPack{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO session_packs (user_id, total_count, service_count)
		 VALUES ($1, $2, $3)
		 RETURNING `+packColumns,
		userID, totalCount, serviceCount,
	).StructScan(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]SessionPack, error) {
	packs := []SessionPack{}
	err := r.db.SelectContext(ctx, &packs,
		`SELECT `+packColumns+` FROM session_packs WHERE user_id = $1 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	return packs, nil
}

func (r *repository) ConsumeOldest(ctx context.Context, userID int) (*SessionPack, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock all of the member's packs and pick here. A locked row that a
	// concurrent check-in exhausts must fall through to the next pack.
	var packs []SessionPack
	err = tx.SelectContext(ctx, &packs,
		`SELECT `+packColumns+`
		 FROM session_packs
		 WHERE user_id = $1
		 ORDER BY created_at, id
		 FOR UPDATE`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	var p *SessionPack
	for i := range packs {
		if !packs[i].Exhausted() {
			p = &packs[i]
			break
		}
	}
	if p == nil {
		return nil, ErrNoRemainingSessions
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE session_packs SET used_count = used_count + 1 WHERE id = $1`,
		p.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.UsedCount++
	return p, nil
}
