package exam

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/exam"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service exam.ExamService
}

func NewHandler(service exam.ExamService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateExam)
	r.PATCH("/:id", h.EditExam)
	r.GET("/:id", h.GetExam)
	r.GET("", h.ListExams)
	r.DELETE("/:id", h.DeleteExam)
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
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

func (h *Handler) EditExam(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditExamRequest
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

func (h *Handler) GetExam(c *gin.Context) {
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

func (h *Handler) ListExams(c *gin.Context) {
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

func (h *Handler) DeleteExam(c *gin.Context) {
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
