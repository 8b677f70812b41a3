package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/readcheck/readcheck/internal/audit"
	"github.com/readcheck/readcheck/internal/questions"
)

// POST /questions/bulk  {"content": "...", "category": "...", "setName": "..."}
// One question per non-blank line of content.
func BulkImportHandler(store *questions.FileStore, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content  string `json:"content"`
			Category string `json:"category"`
			SetName  string `json:"setName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Content == "" || req.Category == "" {
			http.Error(w, "file content and category are required", http.StatusBadRequest)
			return
		}

		inserted, err := store.BulkImport(req.Content, req.Category, req.SetName)
		if err != nil {
			if errors.Is(err, questions.ErrEmptyContent) {
				http.Error(w, "file content is empty or invalid", http.StatusBadRequest)
				return
			}
			log.Printf("[questions] bulk import failed: %v", err)
			http.Error(w, "failed to bulk write questions", http.StatusInternalServerError)
			return
		}

		if events != nil {
			data, _ := json.Marshal(map[string]any{"category": req.Category, "inserted": inserted})
			if err := events.Append(r.Context(), audit.Event{
				Type: "QuestionsImported", Ref: req.Category, DataJSON: string(data),
			}); err != nil {
				log.Printf("[questions] event append failed: %v", err)
			}
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": fmt.Sprintf("%d questions added successfully to category '%s'", inserted, req.Category),
		})
	}
}
