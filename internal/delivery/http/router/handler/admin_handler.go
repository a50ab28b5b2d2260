package handler

import (
	"net/http"

	"didilikeit/config"
	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/delivery/http/response"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the cross-user views.
type AdminHandler struct {
	entries    usecase.EntryUsecase
	qrcode     service.QRCodeService
	inviteCode string
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(entries usecase.EntryUsecase, qrcode service.QRCodeService, cfg *config.Config) *AdminHandler {
	inviteCode := ""
	if cfg.Auth.LocalMode == config.LocalModeInvite {
		inviteCode = cfg.Auth.InviteCode
	}

	return &AdminHandler{
		entries:    entries,
		qrcode:     qrcode,
		inviteCode: inviteCode,
	}
}

// UsageResponse is one bar of the usage chart.
type UsageResponse struct {
	Email string `json:"email"`
	Count int    `json:"count"`
}

// StatsResponse aggregates the table without row contents.
type StatsResponse struct {
	TotalRows     int             `json:"totalRows"`
	UniqueUsers   int             `json:"uniqueUsers"`
	PerUserCounts map[string]int  `json:"perUserCounts"`
	Usage         []UsageResponse `json:"usage"`
	Degraded      bool            `json:"degraded"`
	Warning       string          `json:"warning,omitempty"`
}

// Stats returns admin statistics.
func (h *AdminHandler) Stats(c echo.Context) error {
	out, err := h.entries.AdminStats(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return errors.WithStack(err)
	}

	usage := make([]UsageResponse, 0, len(out.Stats.Usage))
	for _, u := range out.Stats.Usage {
		usage = append(usage, UsageResponse{Email: u.Email, Count: u.Count})
	}

	return response.Success(c, http.StatusOK, StatsResponse{
		TotalRows:     out.Stats.TotalRows,
		UniqueUsers:   out.Stats.UniqueUsers,
		PerUserCounts: out.Stats.PerUserCounts,
		Usage:         usage,
		Degraded:      out.Degraded,
		Warning:       out.Warning,
	}, out.Warning)
}

// InviteQR renders the sign-in link as a PNG.
func (h *AdminHandler) InviteQR(c echo.Context) error {
	png, err := h.qrcode.GenerateInviteQR(h.inviteCode)
	if err != nil {
		return errors.Wrap(err, "failed to render invite QR code")
	}

	c.Response().Header().Set("Cache-Control", "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}
