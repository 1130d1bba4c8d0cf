package http

import (
	"errors"
	"net/http"

	domain "realreselling/internal/domain/submission"
	"realreselling/internal/logger"
	ucSubmission "realreselling/internal/usecase/submission"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ApprovalHandler struct {
	uc  *ucSubmission.Usecase
	log *logrus.Entry
}

func NewApprovalHandler(uc *ucSubmission.Usecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: logger.NewSublogger("http")}
}

type approvalPage struct {
	OK        bool
	Title     string
	Heading   string
	Message   string
	Name      string
	Email     string
	AccessURL string
}

// invalidLinkPage is shared by unknown id and wrong secret so the page does not tell them apart.
var invalidLinkPage = approvalPage{
	Title:   "Nevažeći link",
	Heading: "Link za odobrenje nije važeći",
	Message: "Proveri da li si otvorio ceo link iz obaveštenja.",
}

// Approve is the admin's one-click link from the submission-received notification.
func (h *ApprovalHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.QueryParam("id"), c.QueryParam("secret"))
	if err == nil {
		return c.Render(http.StatusOK, "approval.html", approvalPage{
			OK:        true,
			Title:     "Uplata odobrena",
			Heading:   "Uplata je odobrena",
			Message:   "Kupac će dobiti pristup čim automatizacija pošalje email.",
			Name:      dto.Name,
			Email:     dto.Email,
			AccessURL: dto.AccessURL,
		})
	}

	// Map domain errors → HTTP codes
	var ap *domain.AlreadyProcessedError
	switch {
	case errors.Is(err, domain.ErrMissingLinkParams):
		return c.Render(http.StatusBadRequest, "approval.html", approvalPage{
			Title:   "Nepotpun link",
			Heading: "Nedostaju parametri",
			Message: "Link mora sadržati id i secret.",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Render(http.StatusNotFound, "approval.html", invalidLinkPage)
	case errors.Is(err, domain.ErrSecretMismatch):
		return c.Render(http.StatusForbidden, "approval.html", invalidLinkPage)
	case errors.As(err, &ap):
		return c.Render(http.StatusConflict, "approval.html", approvalPage{
			Title:   "Već obrađeno",
			Heading: "Ova uplata je već obrađena",
			Message: "Trenutni status: " + string(ap.Status) + ".",
		})
	default:
		h.log.WithError(err).Error("approval failed")
		return c.Render(http.StatusInternalServerError, "approval.html", approvalPage{
			Title:   "Greška",
			Heading: "Odobrenje nije uspelo",
			Message: "Došlo je do greške na serveru. Pokušaj ponovo za minut.",
		})
	}
}
