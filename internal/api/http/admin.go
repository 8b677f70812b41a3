package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/readcheck/readcheck/internal/questions"
)

// DELETE /questions/{id}
func DeleteQuestionHandler(store *questions.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid question ID", http.StatusBadRequest)
			return
		}

		switch err := store.DeleteQuestion(id); {
		case errors.Is(err, questions.ErrQuestionNotFound):
			http.Error(w, "question not found", http.StatusNotFound)
		case err != nil:
			log.Printf("[questions] delete failed: %v", err)
			http.Error(w, "failed to delete question", http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, map[string]string{"message": "Question deleted successfully"})
		}
	}
}

// DELETE /questions/sets?category=...&setId=...
func DeleteSetHandler(store *questions.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		setID := r.URL.Query().Get("setId")
		if category == "" || setID == "" {
			http.Error(w, "category and setId are required", http.StatusBadRequest)
			return
		}

		switch err := store.DeleteSet(category, setID); {
		case errors.Is(err, questions.ErrCategoryNotFound):
			http.Error(w, "category not found", http.StatusNotFound)
		case errors.Is(err, questions.ErrSetNotFound):
			http.Error(w, "set not found", http.StatusNotFound)
		case err != nil:
			log.Printf("[questions] delete set failed: %v", err)
			http.Error(w, "failed to delete set", http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, map[string]string{"message": "Set deleted successfully"})
		}
	}
}

// GET /questions/categories
func ListCategoriesHandler(store *questions.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := store.Categories()
		if err != nil {
			log.Printf("[questions] list categories failed: %v", err)
			http.Error(w, "failed to read categories", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}
