package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mind-engage/pizzaquiz/internal/quiz"
)

type userStateRow struct {
	UserID    string `db:"user_id"`
	StateJSON string `db:"state_json"`
	UpdatedAt int64  `db:"updated_at"`
}

// SQLStore keeps one row per user in user_states (see db.Open). Writes are
// single-row upserts, so concurrent users never overwrite each other.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQL(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, userID string) (quiz.UserState, error) {
	var row userStateRow
	err := s.db.GetContext(ctx, &row,
		`SELECT user_id, state_json, updated_at FROM user_states WHERE user_id=$1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.UserState{}, ErrNotFound
		}
		return quiz.UserState{}, err
	}
	var st quiz.UserState
	if err := json.Unmarshal([]byte(row.StateJSON), &st); err != nil {
		return quiz.UserState{}, err
	}
	return st, nil
}

func (s *SQLStore) Put(ctx context.Context, userID string, st quiz.UserState) error {
	sj, err := json.Marshal(st)
	if err != nil {
		return err
	}
	now := s.now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO user_states (user_id,state_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE SET state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		userID, string(sj), now, now)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_states WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PruneIdle(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_states WHERE updated_at < $1`, before.Unix())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_states`); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }
