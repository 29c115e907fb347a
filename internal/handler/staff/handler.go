package staff

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/staff"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service staff.StaffService
}

func NewHandler(service staff.StaffService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateStaff)
	r.PATCH("/:id", h.EditStaff)
	r.GET("/:id", h.GetStaff)
	r.GET("", h.ListStaffs)
	r.DELETE("/:id", h.DeleteStaff)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	staff, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(staff)
}

func (h *Handler) EditStaff(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditStaffRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	staff, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(staff)
}

func (h *Handler) GetStaff(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	staff, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(staff)
}

func (h *Handler) ListStaffs(c *gin.Context) {
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

// DeleteStaff soft-deletes by default; ?hard=true removes the record.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	staff, err := h.service.Delete(c.Request.Context(), id, handler.HardDelete(c))
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(staff)
}
