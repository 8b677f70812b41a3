package http

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`               // usually "student"
	Password string `json:"password,omitempty"` // plaintext optional (LAN-only)
}

// POST /users/bulk — accepts either multipart file= (CSV/JSON) or a raw
// JSON array in the body; teachers provision whole class rosters here.
func BulkUpsertUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []userRow
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			f, _, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file required", http.StatusBadRequest)
				return
			}
			defer f.Close()
			// sniff simple CSV vs JSON by first non-space byte
			buf := make([]byte, 1)
			if _, err := f.Read(buf); err != nil {
				http.Error(w, "empty file", http.StatusBadRequest)
				return
			}
			if seeker, ok := f.(io.Seeker); ok {
				_, _ = seeker.Seek(0, io.SeekStart)
			}
			if buf[0] == '[' || buf[0] == '{' {
				if err := json.NewDecoder(f).Decode(&rows); err != nil {
					http.Error(w, "bad json", http.StatusBadRequest)
					return
				}
			} else {
				rs, err := parseUserCSV(f)
				if err != nil {
					http.Error(w, "bad csv: "+err.Error(), http.StatusBadRequest)
					return
				}
				rows = rs
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
				http.Error(w, "expected JSON array or multipart file", http.StatusBadRequest)
				return
			}
		}
		if len(rows) == 0 {
			writeJSON(w, http.StatusOK, map[string]any{"upserted": 0})
			return
		}

		n, err := upsertUsers(r.Context(), db, rows)
		if err != nil {
			log.Printf("[users] bulk upsert failed: %v", err)
			http.Error(w, "failed to upsert users", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"upserted": n})
	}
}

// GET /users?role=student
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		q := `SELECT id, username, role FROM users ORDER BY username`
		args := []any{}
		if role != "" {
			q = `SELECT id, username, role FROM users WHERE role=$1 ORDER BY username`
			args = append(args, role)
		}
		rows, err := db.QueryContext(r.Context(), q, args...)
		if err != nil {
			log.Printf("[users] list failed: %v", err)
			http.Error(w, "failed to list users", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		out := []userRow{}
		for rows.Next() {
			var u userRow
			if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
				http.Error(w, "failed to list users", http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// parseUserCSV expects a header row username,role,password (id optional).
func parseUserCSV(r io.Reader) ([]userRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv needs a header plus at least one row")
	}
	idx := map[string]int{}
	for i, col := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []userRow
	for _, rec := range records[1:] {
		u := userRow{
			ID:       get(rec, "id"),
			Username: get(rec, "username"),
			Role:     get(rec, "role"),
			Password: get(rec, "password"),
		}
		if u.Username == "" {
			continue
		}
		rows = append(rows, u)
	}
	return rows, nil
}

func upsertUsers(ctx context.Context, db *sql.DB, rows []userRow) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, u := range rows {
		if u.Username == "" {
			continue
		}
		if u.Role == "" {
			u.Role = "student"
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		pass := u.Password
		if pass == "" {
			pass = u.Username // LAN-only default; force a change later
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, username, role, pass_hash, created_at)
			 VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (username) DO UPDATE SET role=EXCLUDED.role, pass_hash=EXCLUDED.pass_hash`,
			u.ID, u.Username, u.Role, string(hash), time.Now().Unix()); err != nil {
			return 0, err
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
