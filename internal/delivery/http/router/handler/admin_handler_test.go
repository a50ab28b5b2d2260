package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"didilikeit/config"
	"didilikeit/internal/errors"
	mockservice "didilikeit/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminContext() (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/admin/invite.png", nil)
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestAdminHandler_InviteQR(t *testing.T) {
	tests := []struct {
		name      string
		localMode string
		wantCode  string
	}{
		{name: "invite mode embeds the code", localMode: config.LocalModeInvite, wantCode: "club"},
		{name: "password mode leaves the code out", localMode: config.LocalModePassword, wantCode: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qr := mockservice.NewMockQRCodeService(t)
			qr.EXPECT().GenerateInviteQR(tt.wantCode).Return([]byte("png-bytes"), nil).Once()

			cfg := &config.Config{Auth: &config.AuthConfig{LocalMode: tt.localMode, InviteCode: "club"}}
			h := NewAdminHandler(nil, qr, cfg)

			c, rec := newAdminContext()
			require.NoError(t, h.InviteQR(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Equal(t, "png-bytes", rec.Body.String())
		})
	}
}

func TestAdminHandler_InviteQR_RenderFailure(t *testing.T) {
	renderErr := errors.New("encoder exploded")

	qr := mockservice.NewMockQRCodeService(t)
	qr.EXPECT().GenerateInviteQR("club").Return(nil, renderErr).Once()

	cfg := &config.Config{Auth: &config.AuthConfig{LocalMode: config.LocalModeInvite, InviteCode: "club"}}
	h := NewAdminHandler(nil, qr, cfg)

	c, _ := newAdminContext()
	err := h.InviteQR(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, renderErr)
}
