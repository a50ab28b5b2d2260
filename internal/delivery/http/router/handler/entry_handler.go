package handler

import (
	"net/http"
	"strconv"

	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/delivery/http/response"
	"didilikeit/internal/domain/entity"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// EntryHandler exposes the caller's own log.
type EntryHandler struct {
	entries usecase.EntryUsecase
}

// NewEntryHandler is the constructor for EntryHandler, injected by Fx.
func NewEntryHandler(entries usecase.EntryUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// EntryResponse is one row as the API shows it. The owner is never echoed
// back; it is always the caller.
type EntryResponse struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	Creator  string `json:"creator,omitempty"`
	Type     string `json:"type"`
	Genre    string `json:"genre,omitempty"`
	Year     int    `json:"year,omitempty"`
	Date     string `json:"date,omitempty"`
	Verdict  string `json:"verdict"`
	Thoughts string `json:"thoughts,omitempty"`
}

// SummaryResponse is the headline above the log.
type SummaryResponse struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

// ListResponse is the caller's log, newest first.
type ListResponse struct {
	Entries  []EntryResponse `json:"entries"`
	Version  string          `json:"version"`
	Summary  SummaryResponse `json:"summary"`
	Degraded bool            `json:"degraded"`
	Warning  string          `json:"warning,omitempty"`
}

// List returns the caller's entries, filtered by ?q=.
func (h *EntryHandler) List(c echo.Context) error {
	out, err := h.entries.ListMyEntries(c.Request().Context(), deliverycontext.GetSession(c), &usecase.ListInput{
		Search: c.QueryParam("q"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	entries := make([]EntryResponse, 0, len(out.Items))
	for _, item := range out.Items {
		entries = append(entries, toEntryResponse(item.Entry, item.Position))
	}

	byType := make(map[string]int, len(out.Summary.ByCategory))
	for category, count := range out.Summary.ByCategory {
		byType[string(category)] = count
	}

	message := ""
	if out.Degraded {
		message = out.Warning
	}

	return response.Success(c, http.StatusOK, ListResponse{
		Entries:  entries,
		Version:  out.Version,
		Summary:  SummaryResponse{Total: out.Summary.Total, ByType: byType},
		Degraded: out.Degraded,
		Warning:  out.Warning,
	}, message)
}

// Add appends a new entry owned by the caller.
func (h *EntryHandler) Add(c echo.Context) error {
	var input usecase.AddEntryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid entry input")
	}

	entry, err := h.entries.AddEntry(c.Request().Context(), deliverycontext.GetSession(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEntryResponse(entry, -1), "Entry added")
}

// Delete removes the caller's entry by ID.
func (h *EntryHandler) Delete(c echo.Context) error {
	if err := h.entries.DeleteEntry(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Entry deleted")
}

// DeleteAt removes the caller's entry at a position of the version they listed.
func (h *EntryHandler) DeleteAt(c echo.Context) error {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Position must be an integer")
	}

	if err := h.entries.DeleteEntryAt(c.Request().Context(), deliverycontext.GetSession(c), position, c.QueryParam("version")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Entry deleted")
}

func toEntryResponse(entry *entity.LogEntry, position int) EntryResponse {
	return EntryResponse{
		ID:       entry.ID,
		Position: position,
		Title:    entry.Title,
		Creator:  entry.Creator,
		Type:     string(entry.Category),
		Genre:    entry.Genre,
		Year:     entry.Year,
		Date:     entry.DateString(),
		Verdict:  string(entry.Verdict),
		Thoughts: entry.Thoughts,
	}
}
