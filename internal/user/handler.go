package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*User, error)
	GetByID(id string) (*User, error)
	List() ([]*User, error)
	ListNurses() ([]*User, error)
	ListCadres() ([]*User, error)
	Update(id string, dto UpdateDTO) error
	ChangePassword(id string, dto ChangePasswordDTO) error
	AssignService(id string, dto AssignServiceDTO) error
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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Register: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Utilisateur enregistré avec succès", RegisteredResponse{
		ID:        u.ID,
		Matricule: u.Matricule,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Utilisateurs récupérés avec succès", users)
}

func (h *Handler) ListNurses(w http.ResponseWriter, r *http.Request) {
	nurses, err := h.Service.ListNurses()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Infirmiers récupérés avec succès", nurses)
}

func (h *Handler) ListCadres(w http.ResponseWriter, r *http.Request) {
	cadres, err := h.Service.ListCadres()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Cadres récupérés avec succès", cadres)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Utilisateur récupéré avec succès", u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Update(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Utilisateur mis à jour avec succès", map[string]string{
		"id":         id,
		"updated_at": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.ChangePassword(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Mot de passe modifié avec succès", map[string]string{"id": id})
}

func (h *Handler) AssignService(w http.ResponseWriter, r *http.Request) {
	var dto AssignServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.AssignService(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Service ajouté avec succès", map[string]string{"id": id})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Utilisateur supprimé avec succès", map[string]string{"id": id})
}
