package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"articleprompts/internal/network"
	"articleprompts/internal/service"
	"articleprompts/internal/service/ai"
)

// proxyTestURL answers with a tiny page and no redirects.
const proxyTestURL = "https://captive.apple.com/"

type SettingsHandler struct {
	service       service.SettingsService
	clientFactory *network.ClientFactory
}

type aiSettingsRequest struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"apiKey"`
	BaseURL     string `json:"baseUrl"`
	Model       string `json:"model"`
	FAQCount    int    `json:"faqCount"`
	Concurrency int    `json:"concurrency"`
}

type aiTestRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type testResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type deletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

type networkSettingsRequest struct {
	Enabled  bool   `json:"enabled"`
	Type     string `json:"type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewSettingsHandler(service service.SettingsService, clientFactory *network.ClientFactory) *SettingsHandler {
	return &SettingsHandler{service: service, clientFactory: clientFactory}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/ai", h.GetAISettings)
	g.PUT("/settings/ai", h.UpdateAISettings)
	g.POST("/settings/ai/test", h.TestAI)
	g.GET("/settings/network", h.GetNetworkSettings)
	g.PUT("/settings/network", h.UpdateNetworkSettings)
	g.POST("/settings/network/test", h.TestNetworkProxy)
	g.DELETE("/settings/anubis-cookies", h.ClearAnubisCookies)
}

// GetAISettings returns the AI configuration.
// @Summary Get AI settings
// @Description Get the AI provider configuration with a masked API key
// @Tags settings
// @Produce json
// @Success 200 {object} service.AISettings
// @Failure 500 {object} errorResponse
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAISettings(c echo.Context) error {
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateAISettings updates the AI configuration.
// @Summary Update AI settings
// @Description Update the AI provider configuration. Empty or masked apiKey keeps the existing key.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body aiSettingsRequest true "AI settings"
// @Success 200 {object} service.AISettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) UpdateAISettings(c echo.Context) error {
	var req aiSettingsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}

	settings := &service.AISettings{
		Provider:    req.Provider,
		APIKey:      req.APIKey,
		BaseURL:     req.BaseURL,
		Model:       req.Model,
		FAQCount:    req.FAQCount,
		Concurrency: req.Concurrency,
	}
	if err := h.service.SetAISettings(c.Request().Context(), settings); err != nil {
		return writeServiceError(c, err)
	}

	return h.GetAISettings(c)
}

// TestAI checks a credential without saving it.
// @Summary Test AI connection
// @Description Verify the API key with a model metadata request. A masked apiKey tests the stored key.
// @Tags settings
// @Accept json
// @Produce json
// @Param config body aiTestRequest true "AI test configuration"
// @Success 200 {object} testResponse
// @Failure 400 {object} errorResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	var req aiTestRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}
	if req.Provider == "" {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "provider is required")
	}
	if req.Model == "" {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "model is required")
	}

	if err := h.service.TestAI(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model); err != nil {
		msg := err.Error()
		if errors.Is(err, ai.ErrAuthentication) {
			msg = "the AI provider rejected the API key"
		}
		return c.JSON(http.StatusOK, testResponse{Success: false, Error: msg})
	}
	return c.JSON(http.StatusOK, testResponse{Success: true, Message: "API key accepted"})
}

// GetNetworkSettings returns the network proxy configuration.
// @Summary Get network settings
// @Description Get the network proxy configuration with masked password
// @Tags settings
// @Produce json
// @Success 200 {object} service.NetworkSettings
// @Failure 500 {object} errorResponse
// @Router /settings/network [get]
func (h *SettingsHandler) GetNetworkSettings(c echo.Context) error {
	settings, err := h.service.GetNetworkSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateNetworkSettings updates the network proxy configuration.
// @Summary Update network settings
// @Description Update the network proxy configuration. Empty password keeps existing password.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body networkSettingsRequest true "Network settings"
// @Success 200 {object} service.NetworkSettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/network [put]
func (h *SettingsHandler) UpdateNetworkSettings(c echo.Context) error {
	var req networkSettingsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}

	settings := service.NetworkSettings(req)
	if err := h.service.SetNetworkSettings(c.Request().Context(), &settings); err != nil {
		return writeServiceError(c, err)
	}

	return h.GetNetworkSettings(c)
}

// TestNetworkProxy tests a proxy configuration without saving it.
// @Summary Test network proxy
// @Description Test the network proxy connection by accessing https://captive.apple.com/
// @Tags settings
// @Accept json
// @Produce json
// @Param config body networkSettingsRequest true "Network test configuration"
// @Success 200 {object} testResponse
// @Failure 400 {object} errorResponse
// @Router /settings/network/test [post]
func (h *SettingsHandler) TestNetworkProxy(c echo.Context) error {
	var req networkSettingsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	}

	if !req.Enabled {
		return c.JSON(http.StatusOK, testResponse{
			Success: true,
			Message: "Proxy is disabled, direct connection will be used",
		})
	}
	if req.Host == "" {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "host is required")
	}
	if req.Port <= 0 {
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "valid port is required")
	}

	proxyURL := service.NetworkSettings(req).ProxyURL()
	if err := h.clientFactory.TestProxyWithConfig(c.Request().Context(), proxyURL, proxyTestURL); err != nil {
		return c.JSON(http.StatusOK, testResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, testResponse{Success: true, Message: "Proxy connection successful"})
}

// ClearAnubisCookies deletes the cached Anubis pass cookies.
// @Summary Clear Anubis cookies
// @Description Delete all cached Anubis challenge cookies used when fetching articles
// @Tags settings
// @Produce json
// @Success 200 {object} deletedCountResponse
// @Failure 500 {object} errorResponse
// @Router /settings/anubis-cookies [delete]
func (h *SettingsHandler) ClearAnubisCookies(c echo.Context) error {
	deleted, err := h.service.ClearAnubisCookies(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, deletedCountResponse{Deleted: deleted})
}
