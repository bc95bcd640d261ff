package code

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/duvalivy/planrh/internal/transport"
	"github.com/duvalivy/planrh/pkg/logger"
	"github.com/duvalivy/planrh/pkg/spreadsheet"
)

const maxUploadSize = 10 << 20

type ServiceAPI interface {
	Create(dto CreateDTO) (*Code, error)
	GetByID(id string) (*Code, error)
	List() ([]Code, error)
	Update(id string, dto UpdateDTO) error
	Delete(id string) error
	Upload(file io.Reader) (*spreadsheet.Report, error)
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

	h.WriteEnvelope(w, http.StatusCreated, "Code créé avec succès", c)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "fichier manquant ou trop volumineux")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "le champ 'file' est obligatoire")
		return
	}
	defer file.Close()

	report, err := h.Service.Upload(file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Import des codes terminé", report)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Codes récupérés avec succès", items, len(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Code récupéré avec succès", c)
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

	h.WriteEnvelope(w, http.StatusOK, "Code mis à jour avec succès", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Code supprimé avec succès", nil)
}
