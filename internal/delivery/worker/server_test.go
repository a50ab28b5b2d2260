package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"didilikeit/config"
	"didilikeit/internal/delivery/worker/handler"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/infra/pubsub"
	"didilikeit/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testActivityToken = "feed-token"

func newTestWorker(t *testing.T, activityToken string) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Worker.ActivityToken = activityToken
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	activity := impl.NewActivityService(impl.ActivityServiceParams{Config: cfg, Logger: logger})

	return NewEcho(logger,
		handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger, Activity: activity}),
		handler.NewActivityHandler(activity, cfg),
	)
}

func getActivity(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func TestWorker_ReceivesPublishedEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(newTestWorker(t, testActivityToken))
	defer server.Close()

	publisher := pubsub.NewLocalHTTPPublisher(server.URL+"/push", logger)
	occurred := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	for _, event := range []*service.EntryEvent{
		{Type: service.EntryAdded, EntryID: "e1", OwnerEmail: "alice@example.com", OccurredAt: occurred},
		{Type: service.EntryAdded, EntryID: "e2", OwnerEmail: "bob@example.com", OccurredAt: occurred},
		{Type: service.EntryDeleted, EntryID: "e1", OwnerEmail: "alice@example.com", OccurredAt: occurred},
	} {
		require.NoError(t, publisher.PublishEntryEvent(context.Background(), event))
	}

	resp := getActivity(t, server.URL+"/activity?email=alice@example.com", testActivityToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []handler.ActivityItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, string(service.EntryDeleted), items[0].Type)
	assert.Equal(t, string(service.EntryAdded), items[1].Type)
	assert.Equal(t, "2026-03-14T18:30:00Z", items[1].OccurredAt)
}

func TestWorker_ActivityRequiresToken(t *testing.T) {
	server := httptest.NewServer(newTestWorker(t, testActivityToken))
	defer server.Close()

	for _, token := range []string{"", "wrong-token"} {
		resp := getActivity(t, server.URL+"/activity?email=bob@example.com", token)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NotContains(t, string(body), "bob@example.com")
	}

	disabled := httptest.NewServer(newTestWorker(t, ""))
	defer disabled.Close()

	resp := getActivity(t, disabled.URL+"/activity", "anything")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWorker_ActivityLimitValidation(t *testing.T) {
	e := newTestWorker(t, testActivityToken)

	req := httptest.NewRequest(http.MethodGet, "/activity?limit=-1", nil)
	req.Header.Set("Authorization", "Bearer "+testActivityToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
