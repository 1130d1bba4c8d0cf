package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	domain "realreselling/internal/domain/submission"
	"realreselling/internal/logger"
	ucSubmission "realreselling/internal/usecase/submission"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type SubmissionHandler struct {
	uc  *ucSubmission.Usecase
	log *logrus.Entry
}

func NewSubmissionHandler(uc *ucSubmission.Usecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, log: logger.NewSublogger("http")}
}

type submitReq struct {
	Name  string `form:"name"  validate:"required,max=200"`
	Email string `form:"email" validate:"required,emailshape,max=320"`
	Phone string `form:"phone" validate:"omitempty,phone"`
}

// Submit accepts the multipart uplatnica form: name, email, optional phone and the image file.
func (h *SubmissionHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing image file"})
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrImageType.Error()})
	}
	if fh.Size > domain.MaxImageBytes {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrImageTooLarge.Error()})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image file"})
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, domain.MaxImageBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image file"})
	}

	_, err = h.uc.Submit(c.Request().Context(), ucSubmission.SubmitInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ContentType: contentType,
		Image:       image,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, domain.ErrImageType), errors.Is(err, domain.ErrImageTooLarge):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStorageNotConfigured):
		h.log.Error("intake refused: object storage env is not set")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "image storage is not configured"})
	default:
		h.log.WithError(err).Error("submission failed")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save submission, please try again"})
	}
}

// ValidateToken always answers 200; invalid, unknown and pending tokens are all just false.
func (h *SubmissionHandler) ValidateToken(c echo.Context) error {
	valid := h.uc.ValidateToken(c.Request().Context(), c.QueryParam("token"))
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

type conversionReq struct {
	Token          string `json:"token"`
	EventSourceURL string `json:"event_source_url"`
}

// Conversion is posted by the confirmation page so the server event carries the
// browser's IP, user agent and ad cookies.
func (h *SubmissionHandler) Conversion(c echo.Context) error {
	var req conversionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	ok := h.uc.ReportConversion(c.Request().Context(), req.Token, ucSubmission.BrowserSignals{
		SourceURL: req.EventSourceURL,
		ClientIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		FBP:       cookieValue(c, "_fbp"),
		FBC:       cookieValue(c, "_fbc"),
	})
	return c.JSON(http.StatusOK, map[string]bool{"ok": ok})
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
