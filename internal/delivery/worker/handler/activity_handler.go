package handler

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"didilikeit/config"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

const defaultActivityLimit = 50

// ActivityHandler serves the recent entry events to holders of the activity token.
type ActivityHandler struct {
	activity usecase.ActivityUsecase
	token    []byte
}

// NewActivityHandler is the constructor for ActivityHandler, injected by Fx.
func NewActivityHandler(activity usecase.ActivityUsecase, cfg *config.Config) *ActivityHandler {
	h := &ActivityHandler{activity: activity}
	if cfg.Worker != nil && cfg.Worker.ActivityToken != "" {
		h.token = []byte(cfg.Worker.ActivityToken)
	}

	return h
}

// ActivityItem is one recorded event.
type ActivityItem struct {
	Type       string `json:"type"`
	EntryID    string `json:"entryId"`
	OwnerEmail string `json:"ownerEmail"`
	OccurredAt string `json:"occurredAt"`
}

// Recent returns the newest events, filtered by ?email= and capped by ?limit=.
func (h *ActivityHandler) Recent(c echo.Context) error {
	if len(h.token) == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "activity feed is disabled")
	}
	if !h.authorized(c.Request()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid activity token")
	}

	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	events := h.activity.Recent(c.Request().Context(), c.QueryParam("email"), limit)
	items := make([]ActivityItem, 0, len(events))
	for _, event := range events {
		items = append(items, ActivityItem{
			Type:       string(event.Type),
			EntryID:    event.EntryID,
			OwnerEmail: event.OwnerEmail,
			OccurredAt: event.OccurredAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ActivityHandler) authorized(req *http.Request) bool {
	const bearerPrefix = "Bearer "

	header := req.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}

	return subtle.ConstantTimeCompare(h.token, []byte(strings.TrimPrefix(header, bearerPrefix))) == 1
}
