package http

import (
	"net/http"

	ucSubmission "realreselling/internal/usecase/submission"

	"github.com/labstack/echo/v4"
)

type PageHandler struct {
	uc      *ucSubmission.Usecase
	pixelID string
}

// NewPageHandler: pixelID may be empty, the page then renders without the pixel.
func NewPageHandler(uc *ucSubmission.Usecase, pixelID string) *PageHandler {
	return &PageHandler{uc: uc, pixelID: pixelID}
}

type confirmationPage struct {
	Unlocked bool
	PixelID  string
	Token    string
	EventID  string
	Value    float64
	Currency string
}

// Confirmation renders the thank-you page. The pixel's eventID is the submission id,
// the same key the server-side Purchase events carry.
func (h *PageHandler) Confirmation(c echo.Context) error {
	dto := h.uc.Confirmation(c.Request().Context(), c.QueryParam("token"))
	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set("Referrer-Policy", "no-referrer")
	return c.Render(http.StatusOK, "confirmation.html", confirmationPage{
		Unlocked: dto.Unlocked,
		PixelID:  h.pixelID,
		Token:    dto.Token,
		EventID:  dto.EventID,
		Value:    dto.Value,
		Currency: dto.Currency,
	})
}
