package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/patient"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreatePatient)
	r.PATCH("/:id", h.EditPatient)
	r.GET("/:id", h.GetPatient)
	r.GET("", h.ListPatients)
	r.DELETE("/:id", h.DeletePatient)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	patient, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(patient)
}

func (h *Handler) EditPatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditPatientRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	patient, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(patient)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(patient)
}

func (h *Handler) ListPatients(c *gin.Context) {
	q, err := handler.ListQuery(c, handler.Text("name", "name"))
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	payload, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(payload)
}

// DeletePatient soft-deletes by default; ?hard=true removes the record.
func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	patient, err := h.service.Delete(c.Request.Context(), id, handler.HardDelete(c))
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(patient)
}
