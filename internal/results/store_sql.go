package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxList caps how many sessions a single listing returns.
const MaxList = 200

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Insert persists one session and returns its generated id.
func (s *SQLStore) Insert(ctx context.Context, r Result) (string, error) {
	aj, err := json.Marshal(r.Answers)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO test_results
		 (id,user_id,category,set_id,set_name,answers_json,audio_path,started_at,finished_at,duration_seconds,total_questions,answered_count,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id, r.UserID, r.Category, r.SetID, r.SetName, string(aj), r.AudioPath,
		r.StartedAt, r.FinishedAt, r.DurationSeconds, r.TotalQuestions, r.AnsweredCount,
		time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns sessions newest first. limit is clamped to MaxList;
// zero or negative means MaxList.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 || limit > MaxList {
		limit = MaxList
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,category,set_id,set_name,answers_json,audio_path,started_at,finished_at,duration_seconds,total_questions,answered_count,created_at
		 FROM test_results ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		var aj string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Category, &r.SetID, &r.SetName, &aj,
			&r.AudioPath, &r.StartedAt, &r.FinishedAt,
			&r.DurationSeconds, &r.TotalQuestions, &r.AnsweredCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aj), &r.Answers); err != nil {
			r.Answers = []Answer{}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
