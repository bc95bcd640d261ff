package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
)

type ServiceAPI interface {
	Kind() Kind
	Create(dto CreateDTO) (*Entry, error)
	GetByID(id string) (*Entry, error)
	List() ([]Entry, error)
	ListByUser(userID string) ([]Entry, error)
	ListByService(serviceID string) ([]Entry, error)
	Upcoming() ([]Entry, error)
	MarkAllForUser(userID string) (int64, error)
	Update(id string, dto UpdateDTO) (*Entry, error)
	Delete(id string) error
}

// Handler serves one feed collection; the router mounts one instance per
// collection.
type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// Routes mounts the collection's endpoints on a subrouter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	if h.Service.Kind().HasDueDate {
		r.Get("/upcoming", h.Upcoming)
	}
	if h.Service.Kind().ReadAllStatus != "" {
		r.Put("/read-all/{user_id}", h.ReadAll)
	}
	r.Get("/user/{user_id}", h.ListByUser)
	r.Get("/service/{service_id}", h.ListByService)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, h.Service.Kind().Label+" créée avec succès", e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Entrées récupérées avec succès", items, len(items))
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByUser(chi.URLParam(r, "user_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Entrées récupérées avec succès", items, len(items))
}

func (h *Handler) ListByService(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByService(chi.URLParam(r, "service_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Entrées récupérées avec succès", items, len(items))
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Upcoming()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Événements à venir récupérés avec succès", items, len(items))
}

func (h *Handler) ReadAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.MarkAllForUser(chi.URLParam(r, "user_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Entrées marquées comme lues", nil, int(count))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Entrée récupérée avec succès", e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Entrée mise à jour avec succès", e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Entrée supprimée avec succès", nil)
}
