package contract

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDTO) (*Contract, error)
	GetByID(id string) (*Contract, error)
	ListByUser(userID string) ([]Contract, error)
	Update(id string, dto UpdateDTO) error
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

	c, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Contrat créé avec succès", c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Contrat récupéré avec succès", c)
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByUser(chi.URLParam(r, "user_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Contrats récupérés avec succès", items, len(items))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Update(chi.URLParam(r, "id"), dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Contrat mis à jour avec succès", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Contrat supprimé avec succès", nil)
}
