package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"articleprompts/internal/service"
)

type ArticleHandler struct {
	service service.ArticleService
}

type fetchArticleRequest struct {
	URL string `json:"url"`
}

type fetchArticleResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	HTML  string `json:"html"`
}

func NewArticleHandler(service service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/articles/fetch", h.Fetch)
}

// Fetch downloads an article for the generator form.
// @Summary Fetch article
// @Description Download a page and return its readable content as HTML. Nothing is stored.
// @Tags articles
// @Accept json
// @Produce json
// @Param request body fetchArticleRequest true "Article URL"
// @Success 200 {object} fetchArticleResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /articles/fetch [post]
func (h *ArticleHandler) Fetch(c echo.Context) error {
	var req fetchArticleRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "url is required")
	}

	article, err := h.service.Fetch(c.Request().Context(), req.URL)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, fetchArticleResponse{
		Title: article.Title,
		URL:   article.URL,
		HTML:  article.HTML,
	})
}
