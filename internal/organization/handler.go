package organization

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

const maxUploadSize = 10 << 20 // 10 MiB

type ManagerAPI interface {
	CreateService(dto ServiceDTO) (*Service, error)
	GetService(id string) (*Service, error)
	ListServices() ([]Service, error)
	UpdateService(id string, dto ServiceUpdateDTO) error
	DeleteService(id string) error

	CreateSpeciality(dto SpecialityDTO) (*Speciality, error)
	GetSpeciality(id string) (*Speciality, error)
	ListSpecialities() ([]Speciality, error)
	UpdateSpeciality(id string, dto SpecialityUpdateDTO) error
	DeleteSpeciality(id string) error
	UploadSpecialities(file io.Reader) (*spreadsheet.Report, error)

	CreatePole(dto PoleDTO) (*Pole, error)
	GetPole(id string) (*Pole, error)
	ListPoles() ([]Pole, error)
	UpdatePole(id string, dto PoleUpdateDTO) error
	DeletePole(id string) error
	UploadPoles(file io.Reader) (*spreadsheet.Report, error)
}

type Handler struct {
	*transport.BaseHandler
	Manager ManagerAPI
}

func NewHandler(manager ManagerAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Manager:     manager,
	}
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var dto ServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc, err := h.Manager.CreateService(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Service créé avec succès", svc)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.Manager.GetService(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Service récupéré avec succès", svc)
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.Manager.ListServices()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Services récupérés avec succès", items, len(items))
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var dto ServiceUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Manager.UpdateService(chi.URLParam(r, "id"), dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Service mis à jour avec succès", nil)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.DeleteService(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Service supprimé avec succès", nil)
}

func (h *Handler) CreateSpeciality(w http.ResponseWriter, r *http.Request) {
	var dto SpecialityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := h.Manager.CreateSpeciality(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Spécialité créée avec succès", sp)
}

func (h *Handler) GetSpeciality(w http.ResponseWriter, r *http.Request) {
	sp, err := h.Manager.GetSpeciality(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Spécialité récupérée avec succès", sp)
}

func (h *Handler) ListSpecialities(w http.ResponseWriter, r *http.Request) {
	items, err := h.Manager.ListSpecialities()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Spécialités récupérées avec succès", items, len(items))
}

func (h *Handler) UpdateSpeciality(w http.ResponseWriter, r *http.Request) {
	var dto SpecialityUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Manager.UpdateSpeciality(chi.URLParam(r, "id"), dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Spécialité mise à jour avec succès", nil)
}

func (h *Handler) DeleteSpeciality(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.DeleteSpeciality(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Spécialité supprimée avec succès", nil)
}

// UploadSpecialities ingests a multipart spreadsheet under the "file" field.
func (h *Handler) UploadSpecialities(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.Manager.UploadSpecialities(file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Import des spécialités terminé", report)
}

func (h *Handler) CreatePole(w http.ResponseWriter, r *http.Request) {
	var dto PoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Manager.CreatePole(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusCreated, "Pôle créé avec succès", p)
}

func (h *Handler) GetPole(w http.ResponseWriter, r *http.Request) {
	p, err := h.Manager.GetPole(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Pôle récupéré avec succès", p)
}

func (h *Handler) ListPoles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Manager.ListPoles()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteList(w, http.StatusOK, "Pôles récupérés avec succès", items, len(items))
}

func (h *Handler) UpdatePole(w http.ResponseWriter, r *http.Request) {
	var dto PoleUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Manager.UpdatePole(chi.URLParam(r, "id"), dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Pôle mis à jour avec succès", nil)
}

func (h *Handler) DeletePole(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.DeletePole(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Pôle supprimé avec succès", nil)
}

// UploadPoles ingests a multipart spreadsheet under the "file" field.
func (h *Handler) UploadPoles(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.Manager.UploadPoles(file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteEnvelope(w, http.StatusOK, "Import des pôles terminé", report)
}

func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "fichier manquant ou trop volumineux")
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "le champ 'file' est obligatoire")
		return nil, false
	}
	return file, true
}
