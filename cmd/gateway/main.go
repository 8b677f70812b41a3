package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/readcheck/readcheck/internal/api/http"
	"github.com/readcheck/readcheck/internal/audit"
	auth "github.com/readcheck/readcheck/internal/auth/middleware"
	"github.com/readcheck/readcheck/internal/config"
	"github.com/readcheck/readcheck/internal/db"
	"github.com/readcheck/readcheck/internal/grid"
	"github.com/readcheck/readcheck/internal/questions"
	rbac "github.com/readcheck/readcheck/internal/rbac"
	"github.com/readcheck/readcheck/internal/results"
	storage "github.com/readcheck/readcheck/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB (results, users, event log) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Stores ---
	qstore := questions.NewFileStore(cfg.QuestionsPath())
	gstore := grid.NewFileStore(cfg.GridPath())
	rstore := results.NewSQLStore(dbh)
	events := audit.NewEventRepo(dbh)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth (local JWT) ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Content routes: the test pages load questions and the number grid
	// without a login.
	r.Get("/questions", api.GetQuestionsHandler(qstore))
	r.Get("/questions/categories", api.ListCategoriesHandler(qstore))
	r.Get("/number-grid", api.GetGridHandler(gstore))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Teacher-only: content management
		pr.With(rbac.Require("questions:manage")).
			Post("/questions", api.AddQuestionHandler(qstore))
		pr.With(rbac.Require("questions:manage")).
			Post("/questions/bulk", api.BulkImportHandler(qstore, events))
		pr.With(rbac.Require("questions:manage")).
			Delete("/questions/sets", api.DeleteSetHandler(qstore))
		pr.With(rbac.Require("questions:manage")).
			Delete("/questions/{id}", api.DeleteQuestionHandler(qstore))

		pr.With(rbac.Require("grid:manage")).
			Post("/number-grid", api.SaveGridHandler(gstore))
		pr.With(rbac.Require("grid:manage")).
			Delete("/number-grid", api.ClearGridHandler(gstore))

		// Sessions
		pr.With(rbac.Require("results:submit")).
			Post("/results", api.SubmitResultHandler(rstore, events))
		pr.With(rbac.Require("results:view-all")).
			Get("/results", api.ListResultsHandler(rstore))

		// Audio recordings. Students may replay what they just
		// uploaded, so upload permission also grants retrieval.
		pr.Route("/assets", func(ar chi.Router) {
			ar.With(rbac.Require("audio:upload")).
				Post("/recordings", api.UploadRecordingHandler(bs))
			ar.With(rbac.RequireAny("audio:view", "audio:upload")).
				Get("/*", api.GetAssetHandler(bs))
		})

		// Users (teacher/admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
