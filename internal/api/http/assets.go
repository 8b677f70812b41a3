package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/readcheck/readcheck/internal/storage"
)

// POST /assets/recordings — multipart "file"; returns the stored key
// plus a retrieval URL. The key goes into the session's audioPath.
func UploadRecordingHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		name := "recording.webm"
		if hdr != nil && hdr.Filename != "" {
			name = hdr.Filename
		}
		key := "recordings/" + time.Now().UTC().Format("20060102T150405.000000000") + "-" + name
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		url, err := bs.SignedURL(key)
		if err != nil {
			url = ""
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"key": key, "url": url})
	}
}

// GET /assets/* — streams the blob at whatever follows /assets/.
func GetAssetHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, ct, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	}
}
