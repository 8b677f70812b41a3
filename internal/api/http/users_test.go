package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	api "github.com/readcheck/readcheck/internal/api/http"
	"github.com/readcheck/readcheck/internal/db"
)

func openUsersDB(t *testing.T) *sql.DB {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

func TestBulkUpsertUsersJSON(t *testing.T) {
	dbh := openUsersDB(t)
	h := api.BulkUpsertUsersHandler(dbh)

	body := `[{"username":"alice","role":"teacher","password":"pw1"},{"username":"bob"}]`
	req := httptest.NewRequest("POST", "/users/bulk", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var role, hash string
	if err := dbh.QueryRow(`SELECT role, pass_hash FROM users WHERE username='alice'`).Scan(&role, &hash); err != nil {
		t.Fatal(err)
	}
	if role != "teacher" {
		t.Fatalf("role = %q", role)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw1")) != nil {
		t.Fatal("password hash does not verify")
	}

	// omitted role defaults to student, omitted password to the username
	if err := dbh.QueryRow(`SELECT role, pass_hash FROM users WHERE username='bob'`).Scan(&role, &hash); err != nil {
		t.Fatal(err)
	}
	if role != "student" {
		t.Fatalf("role = %q, want student", role)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("bob")) != nil {
		t.Fatal("default password should be the username")
	}
}

func TestBulkUpsertUsersCSV(t *testing.T) {
	dbh := openUsersDB(t)
	h := api.BulkUpsertUsersHandler(dbh)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "roster.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("username,role,password\ncarol,student,pw2\n")); err != nil {
		t.Fatal(err)
	}
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/users/bulk", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM users WHERE username='carol'`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("carol rows = %d, want 1", n)
	}
}

func TestBulkUpsertUpdatesExisting(t *testing.T) {
	dbh := openUsersDB(t)
	h := api.BulkUpsertUsersHandler(dbh)

	post := func(body string) {
		req := httptest.NewRequest("POST", "/users/bulk", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != 200 {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
	}
	post(`[{"username":"dave","role":"student","password":"pw"}]`)
	post(`[{"username":"dave","role":"teacher","password":"pw"}]`)

	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM users WHERE username='dave'`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("dave rows = %d, want 1", n)
	}
	var role string
	if err := dbh.QueryRow(`SELECT role FROM users WHERE username='dave'`).Scan(&role); err != nil {
		t.Fatal(err)
	}
	if role != "teacher" {
		t.Fatalf("role = %q, want teacher after upsert", role)
	}
}

func TestListUsersFilterByRole(t *testing.T) {
	dbh := openUsersDB(t)
	up := api.BulkUpsertUsersHandler(dbh)
	req := httptest.NewRequest("POST", "/users/bulk",
		bytes.NewBufferString(`[{"username":"a","role":"teacher"},{"username":"b","role":"student"},{"username":"c","role":"student"}]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	up(rec, req)
	if rec.Code != 200 {
		t.Fatalf("seed status = %d", rec.Code)
	}

	h := api.ListUsersHandler(dbh)
	req = httptest.NewRequest("GET", "/users?role=student", nil)
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if bytes.Contains([]byte(body), []byte(`"a"`)) {
		t.Fatalf("teacher leaked into student filter: %s", body)
	}
}
