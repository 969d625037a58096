package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/labchain/internal/protocol"
	"github.com/mohammad-safakhou/labchain/models"
)

const (
	bannerMessage = "LabChain ML Server"
	serviceName   = "ml-server"
)

var endpoints = []string{"/standardize", "/autocomplete", "/detect-missing", "/health"}

// ProtocolHandler serves the protocol endpoints.
type ProtocolHandler struct {
	Service *protocol.Service
	Version string
}

func (h *ProtocolHandler) Register(g *echo.Group) {
	g.GET("/", h.banner)
	g.GET("/health", h.health)
	g.POST("/standardize", h.standardize)
	g.POST("/autocomplete", h.autocomplete)
	g.POST("/detect-missing", h.detectMissing)
}

type standardizeRequest struct {
	Text    *string        `json:"text"`
	Context map[string]any `json:"context"`
}

type autocompleteRequest struct {
	CurrentSteps []models.StepFields `json:"current_steps"`
	PartialText  string              `json:"partial_text"`
	Context      map[string]any      `json:"context"`
}

type detectMissingRequest struct {
	Protocol  *models.ProtocolInput `json:"protocol"`
	StepIndex *int                  `json:"step_index"`
}

func (h *ProtocolHandler) banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":   bannerMessage,
		"version":   h.Version,
		"endpoints": endpoints,
	})
}

func (h *ProtocolHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy", "service": serviceName})
}

func (h *ProtocolHandler) standardize(c echo.Context) error {
	var req standardizeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Text == nil {
		return missingField("text")
	}
	return c.JSON(http.StatusOK, h.Service.Standardize(c.Request().Context(), *req.Text, req.Context))
}

func (h *ProtocolHandler) autocomplete(c echo.Context) error {
	var req autocompleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.CurrentSteps == nil {
		return missingField("current_steps")
	}
	return c.JSON(http.StatusOK, h.Service.Autocomplete(c.Request().Context(), req.CurrentSteps, req.PartialText))
}

func (h *ProtocolHandler) detectMissing(c echo.Context) error {
	var req detectMissingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Protocol == nil {
		return missingField("protocol")
	}
	steps := req.Protocol.Steps
	if req.StepIndex != nil && (*req.StepIndex < 0 || *req.StepIndex >= len(steps)) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity,
			fmt.Sprintf("step_index %d out of range for %d steps", *req.StepIndex, len(steps)))
	}
	return c.JSON(http.StatusOK, h.Service.DetectMissing(steps, req.StepIndex))
}

// bind decodes the body, reporting any decode failure as 422.
func bind(c echo.Context, v any) error {
	err := c.Bind(v)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, he.Message).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}

func missingField(name string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("field %q is required", name))
}
