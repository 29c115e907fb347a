package question

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/question"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service question.QuestionService
}

func NewHandler(service question.QuestionService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateQuestion)
	r.PATCH("/:id", h.EditQuestion)
	r.GET("/:id", h.GetQuestion)
	r.GET("", h.ListQuestions)
	r.DELETE("/:id", h.DeleteQuestion)
}

func (h *Handler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
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

func (h *Handler) EditQuestion(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditQuestionRequest
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

func (h *Handler) GetQuestion(c *gin.Context) {
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

func (h *Handler) ListQuestions(c *gin.Context) {
	q, err := handler.ListQuery(c, handler.Ref("subject", "subject"), handler.Ref("chapter", "chapter"), handler.Text("content", "content"))
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

func (h *Handler) DeleteQuestion(c *gin.Context) {
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
