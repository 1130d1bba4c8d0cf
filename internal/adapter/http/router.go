package http

import (
	"net/http"

	ucLead "realreselling/internal/usecase/lead"
	ucSubmission "realreselling/internal/usecase/submission"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Routes are the collaborators Register mounts.
type Routes struct {
	Submissions *ucSubmission.Usecase
	Leads       *ucLead.Usecase
	PixelID     string

	// Idempotency guards intake; nil means no guard.
	Idempotency echo.MiddlewareFunc
	Metrics     http.Handler
}

// NewEcho returns an echo instance with the validator and renderer installed.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Renderer = NewRenderer()
	return e
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", NewHandler().Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")

	sub := NewSubmissionHandler(r.Submissions)
	intake := []echo.MiddlewareFunc{
		// 10 MB image plus the text fields and multipart framing
		echomw.BodyLimit("11M"),
	}
	if r.Idempotency != nil {
		intake = append(intake, r.Idempotency)
	}
	api.POST("/uplatnica/submit", sub.Submit, intake...)
	api.GET("/uplatnica/validate-token", sub.ValidateToken)
	api.POST("/uplatnica/conversion", sub.Conversion, echomw.BodyLimit("16K"))
	api.GET("/uplatnica/approve", NewApprovalHandler(r.Submissions).Approve)

	leads := r.Leads
	if leads == nil {
		leads = ucLead.NewUsecase(nil, nil)
	}
	api.POST("/lead", NewLeadHandler(leads).Lead, echomw.BodyLimit("64K"))

	e.GET("/uplatnica/hvala", NewPageHandler(r.Submissions, r.PixelID).Confirmation)
}
