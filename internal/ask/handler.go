package ask

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDTO) (*Ask, error)
	GetByID(id string) (*Ask, error)
	List() ([]Ask, error)
	ListByColleague(colleagueID string) ([]Ask, error)
	Update(id string, dto UpdateDTO) (*Ask, error)
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

	h.WriteEnvelope(w, http.StatusCreated, "Demande envoyée avec succès", a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Demandes récupérées avec succès", items, len(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Demande récupérée avec succès", a)
}

func (h *Handler) ListByColleague(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByColleague(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Demandes récupérées avec succès", items, len(items))
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

	h.WriteEnvelope(w, http.StatusOK, "Demande mise à jour avec succès", a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Demande supprimée avec succès", nil)
}
