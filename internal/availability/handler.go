package availability

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDTO) (*Availability, error)
	GetByID(id string) (*Availability, error)
	ListByUser(userID string) ([]Availability, error)
	ListByDate(date string) ([]Availability, error)
	ListByStatus(status string) ([]Availability, error)
	Team(serviceID, status string) ([]TeamAvailability, error)
	Update(id string, dto UpdateDTO) (*Availability, error)
	Decide(id string, dto DecideDTO) (*Availability, error)
	Delete(id string) error
}

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create availability: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The caller's identity wins over whatever user_id the payload carries,
	// when a verified token is present.
	if uid := internal.UserIDFromContext(r.Context()); uid != "" {
		dto.UserID = uid
	}

	av, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Disponibilité proposée avec succès", av)
}

// Team is the cadre dashboard listing, filterable by service_id and status
// query parameters.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Team(r.URL.Query().Get("service_id"), r.URL.Query().Get("status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Disponibilités de l'équipe récupérées avec succès", items, len(items))
}

// Mine lists the caller's own proposals. A verified token identifies the
// caller; without one the user_id query parameter does, as for Create.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	uid := internal.UserIDFromContext(r.Context())
	if uid == "" {
		uid = r.URL.Query().Get("user_id")
	}
	if uid == "" {
		h.WriteError(w, http.StatusUnauthorized, "Authentification requise")
		return
	}

	items, err := h.Service.ListByUser(uid)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Disponibilités récupérées avec succès", items, len(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	av, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Disponibilité récupérée avec succès", av)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByUser(chi.URLParam(r, "user_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Disponibilités récupérées avec succès", items, len(items))
}

func (h *Handler) ListByDate(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByDate(chi.URLParam(r, "date"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Disponibilités récupérées avec succès", items, len(items))
}

func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByStatus(chi.URLParam(r, "status"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Disponibilités récupérées avec succès", items, len(items))
}

// Decide handles the cadre decision (PUT).
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	var dto DecideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Decide availability: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	av, err := h.Service.Decide(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Statut de la disponibilité mis à jour avec succès", av)
}

// Update handles the partial edit (PATCH).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update availability: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	av, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Disponibilité mise à jour avec succès", av)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Disponibilité supprimée avec succès", nil)
}
