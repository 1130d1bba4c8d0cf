package http

import (
	"errors"
	"net/http"
	"strings"

	"realreselling/internal/logger"
	ucLead "realreselling/internal/usecase/lead"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LeadHandler struct {
	uc  *ucLead.Usecase
	log *logrus.Entry
}

func NewLeadHandler(uc *ucLead.Usecase) *LeadHandler {
	return &LeadHandler{uc: uc, log: logger.NewSublogger("http")}
}

type leadReq struct {
	Name         string            `json:"name"          validate:"max=200"`
	Email        string            `json:"email"         validate:"required,emailshape,max=320"`
	Phone        string            `json:"phone"         validate:"omitempty,phone"`
	DiscountCode string            `json:"discount_code" validate:"max=64"`
	Answers      map[string]string `json:"answers"`
	Source       string            `json:"source"        validate:"max=64"`
}

// Lead forwards a quiz opt-in to the lead webhook and waits for it.
func (h *LeadHandler) Lead(c echo.Context) error {
	var req leadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	err := h.uc.Submit(c.Request().Context(), ucLead.Input(req))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, ucLead.ErrNotConfigured):
		h.log.Error("lead refused: LEAD_WEBHOOK_URL is not set")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lead webhook is not configured"})
	default:
		h.log.WithError(err).Warn("lead forward failed")
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "could not forward lead"})
	}
}
