package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/readcheck/readcheck/internal/grid"
)

// GET /number-grid
func GetGridHandler(store *grid.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := store.Load()
		if err != nil {
			log.Printf("[number-grid] read failed: %v", err)
			http.Error(w, "failed to read number grid", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

// POST /number-grid  {"content": "[[1,2],[3,4]]"}
func SaveGridHandler(store *grid.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			http.Error(w, "invalid content", http.StatusBadRequest)
			return
		}

		switch err := store.Save(req.Content); {
		case errors.Is(err, grid.ErrInvalidGrid):
			http.Error(w, "invalid grid format", http.StatusBadRequest)
		case err != nil:
			log.Printf("[number-grid] save failed: %v", err)
			http.Error(w, "failed to save number grid", http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusCreated, map[string]string{"message": "Number grid saved"})
		}
	}
}

// DELETE /number-grid
func ClearGridHandler(store *grid.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(); err != nil {
			log.Printf("[number-grid] clear failed: %v", err)
			http.Error(w, "failed to clear number grid", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Number grid cleared"})
	}
}
