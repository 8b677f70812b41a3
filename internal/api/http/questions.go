package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/readcheck/readcheck/internal/questions"
)

// GET /questions
// GET /questions?category=general           -> {sets: [...]}
// GET /questions?category=general&flatten=1 -> flat question array
// GET /questions?category=general&randomSet=1 -> {setId, setName, questions}
// Without a category the whole store is flattened (manage page view).
func GetQuestionsHandler(store *questions.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := store.Load()
		if err != nil {
			log.Printf("[questions] read failed: %v", err)
			http.Error(w, "failed to read questions", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		category := q.Get("category")
		if category == "" {
			writeJSON(w, http.StatusOK, questions.Flatten(doc, ""))
			return
		}

		// An unknown category answers with empty sets whatever else
		// was asked for.
		data, ok := doc[category]
		if !ok {
			writeJSON(w, http.StatusOK, questions.CategoryData{Sets: []questions.QuestionSet{}})
			return
		}

		if q.Get("randomSet") == "1" {
			set, ok := questions.RandomSet(data)
			if !ok {
				writeJSON(w, http.StatusOK, map[string]any{
					"setId": nil, "setName": nil, "questions": []questions.Question{},
				})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"setId": set.ID, "setName": set.Name, "questions": set.Questions,
			})
			return
		}

		if q.Get("flatten") == "1" {
			writeJSON(w, http.StatusOK, questions.Flatten(doc, category))
			return
		}

		writeJSON(w, http.StatusOK, data)
	}
}

// POST /questions  {"text": "...", "category": "general"}
func AddQuestionHandler(store *questions.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text     string `json:"text"`
			Category string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, "question text is required", http.StatusBadRequest)
			return
		}

		q, err := store.AddQuestion(req.Text, req.Category)
		if err != nil {
			log.Printf("[questions] add failed: %v", err)
			http.Error(w, "failed to write question", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  "Question added successfully",
			"question": q,
		})
	}
}
