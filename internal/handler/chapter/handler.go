package chapter

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/chapter"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service chapter.ChapterService
}

func NewHandler(service chapter.ChapterService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateChapter)
	r.PATCH("/:id", h.EditChapter)
	r.GET("/:id", h.GetChapter)
	r.GET("", h.ListChapters)
	r.DELETE("/:id", h.DeleteChapter)
}

func (h *Handler) CreateChapter(c *gin.Context) {
	var req model.CreateChapterRequest
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

func (h *Handler) EditChapter(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.EditSubjectRequest
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

func (h *Handler) GetChapter(c *gin.Context) {
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

func (h *Handler) ListChapters(c *gin.Context) {
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

func (h *Handler) DeleteChapter(c *gin.Context) {
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
