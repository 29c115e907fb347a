package news

import (
	"github.com/gin-gonic/gin"

	"github.com/Mdtr3002/hms-be/internal/handler"
	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/service/news"
	"github.com/Mdtr3002/hms-be/pkg/httputil"
)

type Handler struct {
	service news.NewsService
}

func NewHandler(service news.NewsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateNews)
	r.PATCH("/:id", h.EditNews)
	r.GET("/:id", h.GetNews)
	r.GET("", h.ListNews)
	r.DELETE("/:id", h.DeleteNews)
}

func (h *Handler) CreateNews(c *gin.Context) {
	var req model.NewsRequest
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

func (h *Handler) EditNews(c *gin.Context) {
	id, err := handler.ParseID(c)
	if err != nil {
		httputil.From(c).Fail(err)
		return
	}

	var req model.NewsRequest
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

func (h *Handler) GetNews(c *gin.Context) {
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

func (h *Handler) ListNews(c *gin.Context) {
	q, err := handler.ListQuery(c, handler.Text("title", "title"), handler.Text("author", "author"))
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

func (h *Handler) DeleteNews(c *gin.Context) {
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
