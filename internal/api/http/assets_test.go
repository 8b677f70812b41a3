package http_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/readcheck/readcheck/internal/api/http"
	"github.com/readcheck/readcheck/internal/storage"
)

func newAssetServer(t *testing.T) *httptest.Server {
	t.Helper()
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	r.Post("/assets/recordings", api.UploadRecordingHandler(bs))
	r.Get("/assets/*", api.GetAssetHandler(bs))
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestUploadAndFetchRecording(t *testing.T) {
	ts := newAssetServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "take1.webm")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("opus-data")); err != nil {
		t.Fatal(err)
	}
	_ = mw.Close()

	resp, err := http.Post(ts.URL+"/assets/recordings", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	out := decodeBody[map[string]string](t, resp)
	if out["key"] == "" {
		t.Fatalf("missing key in response: %v", out)
	}

	resp, err = http.Get(ts.URL + "/assets/" + out["key"])
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("fetch status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/webm" {
		t.Fatalf("content type = %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "opus-data" {
		t.Fatalf("data = %q", data)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	ts := newAssetServer(t)

	resp, err := http.Post(ts.URL+"/assets/recordings", "application/json", bytes.NewBufferString("{}"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
