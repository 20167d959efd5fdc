package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"articleprompts/internal/service"
)

type PromptHandler struct {
	service service.PromptService
}

type generateRequest struct {
	Content  string `json:"content"`
	APIKey   string `json:"apiKey"`
	FAQCount int    `json:"faqCount"`
}

type previewRequest struct {
	Content  string `json:"content"`
	FAQCount int    `json:"faqCount"`
}

func NewPromptHandler(service service.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

func (h *PromptHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/prompts/generate", h.Generate)
	g.POST("/prompts/preview", h.Preview)
}

// Generate runs the article through all four prompts.
// @Summary Generate prompt outputs
// @Description Extract the article, fill the FAQ, AI Overview, People Also Ask and Entities templates and send each to the AI provider. Any failure discards the whole run.
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body generateRequest true "Article content, optional API key and FAQ count (1-10)"
// @Success 200 {object} model.GenerationResult
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /prompts/generate [post]
func (h *PromptHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}

	result, err := h.service.Generate(c.Request().Context(), service.GenerateInput{
		Content:  req.Content,
		APIKey:   req.APIKey,
		FAQCount: req.FAQCount,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Preview shows the extraction and the filled templates without calling the provider.
// @Summary Preview prompts
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body previewRequest true "Article content and FAQ count"
// @Success 200 {object} service.PreviewResult
// @Failure 400 {object} errorResponse
// @Router /prompts/preview [post]
func (h *PromptHandler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}

	result, err := h.service.Preview(c.Request().Context(), req.Content, req.FAQCount)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
