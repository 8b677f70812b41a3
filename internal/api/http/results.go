package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/readcheck/readcheck/internal/audit"
	auth "github.com/readcheck/readcheck/internal/auth/middleware"
	"github.com/readcheck/readcheck/internal/results"
)

// POST /results
// The authenticated subject owns the session; the payload carries the
// category, per-question answers and timing captured by the client.
func SubmitResultHandler(store *results.SQLStore, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Category        string           `json:"category"`
			SetID           string           `json:"setId"`
			SetName         string           `json:"setName"`
			Answers         []results.Answer `json:"answers"`
			AudioPath       string           `json:"audioPath"`
			StartedAt       string           `json:"startedAt"`
			FinishedAt      string           `json:"finishedAt"`
			DurationSeconds int              `json:"durationSeconds"`
			TotalQuestions  int              `json:"totalQuestions"`
			AnsweredCount   int              `json:"answeredCount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Category == "" || req.Answers == nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		id, err := store.Insert(r.Context(), results.Result{
			UserID:          auth.UserIDFromContext(r.Context()),
			Category:        req.Category,
			SetID:           req.SetID,
			SetName:         req.SetName,
			Answers:         req.Answers,
			AudioPath:       req.AudioPath,
			StartedAt:       req.StartedAt,
			FinishedAt:      req.FinishedAt,
			DurationSeconds: req.DurationSeconds,
			TotalQuestions:  req.TotalQuestions,
			AnsweredCount:   req.AnsweredCount,
		})
		if err != nil {
			log.Printf("[results] insert failed: %v", err)
			http.Error(w, "failed to save results", http.StatusInternalServerError)
			return
		}

		if events != nil {
			data, _ := json.Marshal(map[string]any{"category": req.Category, "answered": req.AnsweredCount})
			if err := events.Append(r.Context(), audit.Event{
				Type: "ResultSubmitted", Ref: id, DataJSON: string(data),
			}); err != nil {
				log.Printf("[results] event append failed: %v", err)
			}
		}

		writeJSON(w, http.StatusCreated, map[string]string{"message": "Results saved", "id": id})
	}
}

// GET /results — teacher-only listing, newest first, capped.
func ListResultsHandler(store *results.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), results.MaxList)
		list, err := store.List(r.Context(), limit)
		if err != nil {
			log.Printf("[results] list failed: %v", err)
			http.Error(w, "failed to load results", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
