package handlers

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lifeos/internal/ai"
	"lifeos/internal/crypto"
	"lifeos/internal/journal"
	"lifeos/internal/levelup"
	"lifeos/internal/middleware"
	"lifeos/internal/planner"
	"lifeos/internal/store"
)

// diaryYear is the single year the timeline covers.
const diaryYear = 2026

// Deps carries everything the route table needs. Collaborator and Cipher may
// be nil; the affected features degrade instead of failing at startup.
type Deps struct {
	DB             *sqlx.DB
	Log            *zap.Logger
	Collaborator   ai.Collaborator
	Cipher         *crypto.Cipher
	AllowedOrigins []string
}

// NewRouter builds the full API surface.
func NewRouter(deps Deps) chi.Router {
	records := store.NewRecordStore(deps.DB, deps.Log)
	media := store.NewMediaStore(deps.DB)

	journalSvc := journal.NewService(records, deps.Cipher)
	plannerSvc := planner.NewService(records)
	levelupSvc := levelup.NewService(records)

	calendarH := NewCalendarHandler(diaryYear)
	journalH := NewJournalHandler(journalSvc, deps.Collaborator, deps.Log)
	galleryH := NewGalleryHandler(media, deps.Log)
	plannerH := NewPlannerHandler(plannerSvc, deps.Log)
	levelupH := NewLevelUpHandler(levelupSvc, deps.Log)
	overviewH := NewOverviewHandler(journalSvc, plannerSvc, media, deps.Log)
	settingsH := NewSettingsHandler(records, deps.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics)

	r.Route("/api", func(api chi.Router) {
		api.Get("/months", calendarH.Months)
		api.Get("/calendar/{month}", calendarH.Grid)
		api.Get("/overview/{month}", overviewH.Get)

		api.Get("/journal/{month}", journalH.List)
		api.Post("/journal/{month}", journalH.Upsert)
		api.Get("/journal/{month}/review", journalH.GetReview)
		api.Put("/journal/{month}/review", journalH.PutReview)
		api.Post("/journal/{month}/reflect", journalH.Reflect)
		api.Post("/transcribe", journalH.Transcribe)

		api.Get("/gallery/{month}", galleryH.List)
		api.Post("/gallery/{month}", galleryH.Upload)
		api.Get("/gallery/item/{id}/file", galleryH.ServeFile)
		api.Delete("/gallery/item/{id}", galleryH.Delete)

		api.Get("/planner/events", plannerH.Events)
		api.Get("/planner/events/{date}", plannerH.EventsOn)
		api.Post("/planner/events", plannerH.AddEvent)
		api.Put("/planner/events/{id}", plannerH.UpdateEvent)
		api.Delete("/planner/events/{id}", plannerH.DeleteEvent)

		api.Get("/planner/tasks", plannerH.Tasks)
		api.Post("/planner/tasks", plannerH.AddTask)
		api.Post("/planner/tasks/{id}/toggle", plannerH.ToggleTask)
		api.Delete("/planner/tasks/{id}", plannerH.DeleteTask)

		api.Get("/levelup/{month}", levelupH.Get)
		api.Post("/levelup/{month}/weight", levelupH.LogWeight)
		api.Post("/levelup/{month}/pr", levelupH.SetPR)
		api.Post("/levelup/{month}/activity", levelupH.LogActivity)
		api.Post("/levelup/{month}/problems", levelupH.AddProblem)
		api.Post("/levelup/{month}/skills", levelupH.AddSkill)
		api.Delete("/levelup/{month}/skills/{skill}", levelupH.RemoveSkill)

		api.Get("/settings/theme", settingsH.GetTheme)
		api.Put("/settings/theme", settingsH.PutTheme)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
