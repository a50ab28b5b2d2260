package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"didilikeit/config"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"
	"didilikeit/internal/infra/pubsub"
	"didilikeit/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestPushHandler(t *testing.T, provider string) *PushHandler {
	t.Helper()

	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: provider}}
	cfg.Env.Env = "production"
	cfg.ApplyDefaults()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPushHandler(PushHandlerParams{
		Config:   cfg,
		Logger:   logger,
		Activity: impl.NewActivityService(impl.ActivityServiceParams{Config: cfg, Logger: logger}),
	})
}

func pushBody(t *testing.T, messageID string, payload any) string {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var msg pubsub.PushMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = messageID
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	_ = h.HandlePush(c)

	return rec
}

func TestPushHandler_RecordsEvent(t *testing.T) {
	h := newTestPushHandler(t, pubsub.ProviderLocal)
	event := service.EntryEvent{Type: service.EntryAdded, EntryID: "e1", OwnerEmail: "alice@example.com", RequestID: "req-1"}

	rec := servePush(h, pushBody(t, "m-1", event), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = servePush(h, pushBody(t, "m-1", event), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	recent := h.activity.Recent(context.Background(), "", 0)
	require.Len(t, recent, 1)
	assert.Equal(t, "e1", recent[0].EntryID)
}

func TestPushHandler_BadPayloads(t *testing.T) {
	h := newTestPushHandler(t, pubsub.ProviderLocal)

	rec := servePush(h, `{"message":{"data":"%%%"}}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var msg pubsub.PushMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString([]byte("not json"))
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	rec = servePush(h, string(body), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid events are acknowledged so Pub/Sub stops redelivering them.
	rec = servePush(h, pushBody(t, "m-2", service.EntryEvent{Type: "entry.renamed", EntryID: "e1"}), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, h.activity.Recent(context.Background(), "", 0))
}

func TestPushHandler_VerifiesGoogleTokens(t *testing.T) {
	h := newTestPushHandler(t, pubsub.ProviderGoogle)
	require.True(t, h.verifyPushAuth)

	var audience string
	h.validate = func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
		audience = aud
		if token != "good" {
			return nil, errors.New("bad token")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}
	body := pushBody(t, "m-1", service.EntryEvent{Type: service.EntryAdded, EntryID: "e1"})

	rec := servePush(h, body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, "Token good")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = servePush(h, body, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com/push", audience)
}

func TestNewPushHandler_SkipsVerificationInDevelopment(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: pubsub.ProviderGoogle}}
	cfg.Env.Env = config.EnvDevelop
	cfg.ApplyDefaults()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewPushHandler(PushHandlerParams{
		Config:   cfg,
		Logger:   logger,
		Activity: impl.NewActivityService(impl.ActivityServiceParams{Config: cfg, Logger: logger}),
	})

	assert.False(t, h.verifyPushAuth)
}
