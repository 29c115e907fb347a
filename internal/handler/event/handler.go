package event

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/event"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service event.EventService
}

func NewHandler(service event.EventService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateEvent)
	r.PATCH("/:id", h.EditEvent)
	r.GET("/:id", h.GetEvent)
	r.GET("", h.ListEvents)
	r.DELETE("/:id", h.DeleteEvent)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(result)
}

func (h *Handler) EditEvent(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditEventRequest
	if err := handler.Bind(c, &req); err != nil {
		httputil.From(c).Fail(err)
		return
	}

	result, err := h.service.Edit(c.Request.Context(), id, req)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(result)
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(result)
}

func (h *Handler) ListEvents(c *gin.Context) {
	q, err := handler.ListQuery(c, handler.Ref("subject", "subject"), handler.Text("name", "name"))
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

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}
	httputil.From(c).Success(result)
}
