// Package audit keeps an append-only log of content and result
// mutations, for after-the-fact review of what changed and when.
package audit

import (
	"context"
	"database/sql"
	"time"
)

type Event struct {
	Seq       int64
	Type      string // e.g. ResultSubmitted, QuestionsImported
	Ref       string // natural key: result id, category, question id
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, ref, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Ref, e.DataJSON, time.Now().Unix())
	return err
}
