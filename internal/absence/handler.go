package absence

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDTO) (*Absence, error)
	GetByID(id string) (*Absence, error)
	List() ([]Absence, error)
	Update(id string, dto UpdateDTO) (*Absence, error)
	UpdateStatus(id, status string) (*Absence, error)
	AssignReplacement(id, replacementID string) (*Absence, error)
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
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Demande d'absence créée avec succès", a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Demandes d'absence récupérées avec succès", items, len(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Demande d'absence récupérée avec succès", a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Demande d'absence mise à jour avec succès", a)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var dto StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateStatus(chi.URLParam(r, "id"), dto.Status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Statut de la demande d'absence mis à jour avec succès", a)
}

func (h *Handler) AssignReplacement(w http.ResponseWriter, r *http.Request) {
	var dto ReplaceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.AssignReplacement(chi.URLParam(r, "id"), dto.ReplacementID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Remplaçant affecté avec succès", a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Demande d'absence supprimée avec succès", nil)
}
