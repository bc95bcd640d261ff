package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/duvalivy/planrh/internal/absence"
	"github.com/duvalivy/planrh/internal/ask"
	"github.com/duvalivy/planrh/internal/auth"
	"github.com/duvalivy/planrh/internal/availability"
	"github.com/duvalivy/planrh/internal/code"
	"github.com/duvalivy/planrh/internal/contract"
	"github.com/duvalivy/planrh/internal/feed"
	"github.com/duvalivy/planrh/internal/organization"
	"github.com/duvalivy/planrh/internal/planning"
	"github.com/duvalivy/planrh/internal/transport/middleware"
	"github.com/duvalivy/planrh/internal/transport/swagger"
	"github.com/duvalivy/planrh/internal/user"
)

// Handlers bundles every mounted handler; nil entries are skipped so tests
// can mount a subset.
type Handlers struct {
	User         *user.Handler
	Organization *organization.Handler
	Code         *code.Handler
	Contract     *contract.Handler
	Absence      *absence.Handler
	Availability *availability.Handler
	Planning     *planning.Handler
	Ask          *ask.Handler

	Alerts        *feed.Handler
	Anomalies     *feed.Handler
	Events        *feed.Handler
	Notifications *feed.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, verifier *auth.Verifier, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.Logging)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Token verification is a no-op when no secret is configured; the
		// group keeps the gated surface in one place.
		r.Group(func(pr chi.Router) {
			if verifier != nil {
				pr.Use(verifier.Middleware)
			}

			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Post("/register", h.User.Register)
					ur.Get("/", h.User.List)
					ur.Get("/nurse", h.User.ListNurses)
					ur.Get("/head", h.User.ListCadres)
					ur.Get("/{id}", h.User.Get)
					ur.Put("/update/{id}", h.User.Update)
					ur.Delete("/delete/{id}", h.User.Delete)
					ur.Post("/changePassword/{id}", h.User.ChangePassword)
					ur.Post("/assignService/{id}", h.User.AssignService)
				})
			}

			if h.Organization != nil {
				pr.Route("/services", func(sr chi.Router) {
					sr.Post("/", h.Organization.CreateService)
					sr.Get("/", h.Organization.ListServices)
					sr.Get("/{id}", h.Organization.GetService)
					sr.Put("/{id}", h.Organization.UpdateService)
					sr.Delete("/{id}", h.Organization.DeleteService)
				})
				pr.Route("/specialities", func(sr chi.Router) {
					sr.Post("/", h.Organization.CreateSpeciality)
					sr.Post("/upload", h.Organization.UploadSpecialities)
					sr.Get("/", h.Organization.ListSpecialities)
					sr.Get("/{id}", h.Organization.GetSpeciality)
					sr.Put("/{id}", h.Organization.UpdateSpeciality)
					sr.Delete("/{id}", h.Organization.DeleteSpeciality)
				})
				pr.Route("/poles", func(sr chi.Router) {
					sr.Post("/", h.Organization.CreatePole)
					sr.Post("/upload", h.Organization.UploadPoles)
					sr.Get("/", h.Organization.ListPoles)
					sr.Get("/{id}", h.Organization.GetPole)
					sr.Put("/{id}", h.Organization.UpdatePole)
					sr.Delete("/{id}", h.Organization.DeletePole)
				})
			}

			if h.Code != nil {
				pr.Route("/codes", func(cr chi.Router) {
					cr.Post("/create", h.Code.Create)
					cr.Post("/upload", h.Code.Upload)
					cr.Get("/", h.Code.List)
					cr.Get("/{id}", h.Code.Get)
					cr.Put("/update/{id}", h.Code.Update)
					cr.Delete("/delete/{id}", h.Code.Delete)
				})
			}

			if h.Contract != nil {
				pr.Route("/contrats", func(cr chi.Router) {
					cr.Post("/create", h.Contract.Create)
					cr.Get("/user/{user_id}", h.Contract.ListByUser)
					cr.Get("/{id}", h.Contract.Get)
					cr.Put("/update/{id}", h.Contract.Update)
					cr.Delete("/delete/{id}", h.Contract.Delete)
				})
			}

			if h.Absence != nil {
				pr.Route("/absences", func(ar chi.Router) {
					ar.Post("/create", h.Absence.Create)
					ar.Get("/", h.Absence.List)
					ar.Get("/{id}", h.Absence.Get)
					ar.Put("/update/{id}", h.Absence.Update)
					ar.Put("/status/{id}", h.Absence.UpdateStatus)
					ar.Post("/replace/{id}", h.Absence.AssignReplacement)
					ar.Delete("/delete/{id}", h.Absence.Delete)
				})
			}

			if h.Availability != nil {
				pr.Route("/availabilities", func(ar chi.Router) {
					ar.Post("/", h.Availability.Create)
					ar.Get("/", h.Availability.Team)
					ar.Get("/me", h.Availability.Mine)
					ar.Get("/user/{user_id}", h.Availability.ListByUser)
					ar.Get("/date/{date}", h.Availability.ListByDate)
					ar.Get("/status/{status}", h.Availability.ListByStatus)
					ar.Get("/{id}", h.Availability.Get)
					ar.Put("/{id}", h.Availability.Decide)
					ar.Patch("/{id}", h.Availability.Update)
					ar.Delete("/{id}", h.Availability.Delete)
				})
			}

			if h.Planning != nil {
				pr.Route("/plannings", func(plr chi.Router) {
					plr.Post("/", h.Planning.Create)
					plr.Get("/", h.Planning.List)
					plr.Get("/{id}", h.Planning.Get)
					plr.Put("/{id}", h.Planning.Update)
					plr.Delete("/{id}", h.Planning.Delete)
				})
			}

			if h.Ask != nil {
				pr.Route("/asks", func(ar chi.Router) {
					ar.Post("/create", h.Ask.Create)
					ar.Get("/", h.Ask.List)
					ar.Get("/colleague/{id}", h.Ask.ListByColleague)
					ar.Get("/{id}", h.Ask.Get)
					ar.Put("/update/{id}", h.Ask.Update)
					ar.Delete("/delete/{id}", h.Ask.Delete)
				})
			}

			if h.Alerts != nil {
				pr.Mount("/alerts", h.Alerts.Routes())
			}
			if h.Anomalies != nil {
				pr.Mount("/anomalies", h.Anomalies.Routes())
			}
			if h.Events != nil {
				pr.Mount("/events", h.Events.Routes())
			}
			if h.Notifications != nil {
				pr.Mount("/notifications", h.Notifications.Routes())
			}
		})
	})
}
