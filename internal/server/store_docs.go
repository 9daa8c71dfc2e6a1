package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DocStore implements Store using per-collection tables with JSONB data
// columns. Schema is owned by the migrations package.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func (s *DocStore) get(ctx context.Context, table, id string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, table), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Destinations

func (s *DocStore) CountDestinations(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count)
	return count, err
}

func (s *DocStore) SampleDestinations(ctx context.Context, n int) ([]Destination, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json(data) FROM destinations ORDER BY RANDOM() LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Destination
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var d Destination
		if err := json.Unmarshal([]byte(data), &d); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *DocStore) DestinationByID(ctx context.Context, id string) (Destination, error) {
	var d Destination
	err := s.get(ctx, "destinations", id, &d)
	return d, err
}

// ReplaceDestinations drops the current catalog and inserts docs in a single
// transaction. Documents without an ID get a generated one.
func (s *DocStore) ReplaceDestinations(ctx context.Context, docs []Destination) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM destinations`); err != nil {
		return err
	}
	for _, d := range docs {
		if d.ID == "" {
			d.ID = newID()
		}
		data, err := json.Marshal(d)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO destinations (id, data) VALUES (?, jsonb(?))`,
			d.ID, string(data),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Users

func (s *DocStore) CreateUser(ctx context.Context, u User) (User, error) {
	// Friendly pre-check. The UNIQUE constraint on username backstops the
	// race between two concurrent creates for the same name.
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = ?`, u.Username,
	).Scan(&n)
	if err == nil {
		return User{}, ErrDuplicate
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	u.ID = newID()
	u.CreatedAt = nowUTC()
	data, err := json.Marshal(u)
	if err != nil {
		return User{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, data) VALUES (?, ?, jsonb(?))`,
		u.ID, u.Username, string(data),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return u, nil
}

func (s *DocStore) UserByUsername(ctx context.Context, username string) (User, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM users WHERE username = ?`, username,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *DocStore) UserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.get(ctx, "users", id, &u)
	return u, err
}

func (s *DocStore) IncrementScore(ctx context.Context, username string, points int, correct bool) (bool, error) {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	// Single-statement counter update, the SQLite analogue of $inc: safe
	// under concurrent answer submissions for the same user.
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET data = jsonb_set(data,
			'$.score',           json_extract(data, '$.score') + ?,
			'$.correct_answers', json_extract(data, '$.correct_answers') + ?,
			'$.total_attempts',  json_extract(data, '$.total_attempts') + 1)
		WHERE username = ?
	`, points, correctInc, username)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *DocStore) ClearUsers(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}

// Challenges

func (s *DocStore) CreateChallenge(ctx context.Context, c Challenge) (Challenge, error) {
	c.ID = newID()
	data, err := json.Marshal(c)
	if err != nil {
		return Challenge{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO challenges (id, challenge_id, data) VALUES (?, ?, jsonb(?))`,
		c.ID, c.ChallengeID, string(data),
	)
	if err != nil {
		return Challenge{}, err
	}
	return c, nil
}

func (s *DocStore) ChallengeByID(ctx context.Context, challengeID string) (Challenge, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM challenges WHERE challenge_id = ?`, challengeID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Challenge{}, ErrNotFound
	}
	if err != nil {
		return Challenge{}, err
	}
	var c Challenge
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Challenge{}, err
	}
	return c, nil
}

// AcceptChallenge sets status and opponent unconditionally: re-accepting an
// already-accepted challenge is last-writer-wins, and nothing stops a creator
// accepting their own.
func (s *DocStore) AcceptChallenge(ctx context.Context, challengeID, opponentID, opponentUsername string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE challenges SET data = jsonb_set(data,
			'$.status', ?,
			'$.opponent_id', ?,
			'$.opponent_username', ?)
		WHERE challenge_id = ?
	`, StatusAccepted, opponentID, opponentUsername, challengeID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAcceptFailed
	}
	return nil
}

func (s *DocStore) ClearChallenges(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM challenges`)
	return err
}

// Ensure DocStore implements Store at compile time.
var _ Store = (*DocStore)(nil)
