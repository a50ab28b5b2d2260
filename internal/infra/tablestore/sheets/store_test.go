package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"didilikeit/config"
	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeSheets serves the values endpoints the store uses.
type fakeSheets struct {
	mu          sync.Mutex
	values      [][]any
	status      int
	writeStatus int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found."}}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"range": "Sheet1", "values": f.values})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
		f.values = nil
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut && f.writeStatus != 0:
		w.WriteHeader(f.writeStatus)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"The service is currently unavailable."}}`))
	case r.Method == http.MethodPut:
		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		f.values = body.Values
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestStore(t *testing.T, fake *fakeSheets) *Store {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := New(context.Background(), &config.SheetsConfig{
		SpreadsheetID: "sheet-id",
		SheetName:     "Sheet1",
		Endpoint:      server.URL + "/",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), option.WithoutAuthentication())
	require.NoError(t, err)

	return store
}

func TestStore_ReadAll_LegacyNumbers(t *testing.T) {
	fake := &fakeSheets{values: [][]any{
		{"User", "Title", "Year Released"},
		{"alice@example.com", "Dune", 1965},
	}}

	snapshot, err := newTestStore(t, fake).ReadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, snapshot.Rows, 1)
	assert.Equal(t, 1965, snapshot.Rows[0].Year)
	assert.Equal(t, "alice@example.com", snapshot.Rows[0].OwnerEmail)
}

func TestStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSheets{}
	store := newTestStore(t, fake)

	before, err := store.ReadAll(ctx)
	require.NoError(t, err)

	rows := []*entity.LogEntry{{ID: "1", OwnerEmail: "a@example.com", Title: "Arrival", Category: entity.CategoryMovie}}
	require.NoError(t, store.ReplaceAll(ctx, rows, before.Version))

	after, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after.Rows, 1)
	assert.Equal(t, "Arrival", after.Rows[0].Title)

	err = store.ReplaceAll(ctx, nil, before.Version)
	require.ErrorIs(t, err, repository.ErrVersionMismatch)
}

func TestStore_Unavailable(t *testing.T) {
	store := newTestStore(t, &fakeSheets{status: http.StatusNotFound})

	_, err := store.ReadAll(context.Background())

	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestStore_ReplaceAll_FailedWriteKeepsTable(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSheets{values: [][]any{
		{"User", "Title"},
		{"alice@example.com", "Dune"},
		{"bob@example.com", "Arrival"},
	}}
	store := newTestStore(t, fake)

	before, err := store.ReadAll(ctx)
	require.NoError(t, err)

	fake.mu.Lock()
	fake.writeStatus = http.StatusServiceUnavailable
	fake.mu.Unlock()

	err = store.ReplaceAll(ctx, before.With(&entity.LogEntry{ID: "3", OwnerEmail: "alice@example.com", Title: "Heat"}), before.Version)
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)

	after, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after.Rows, 2)
	assert.Equal(t, before.Version, after.Version)
}

func TestStore_ReplaceAll_KeepsOtherRowsVerbatim(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSheets{values: [][]any{
		{"User", "Title", "Year Released", "Date Finished", "Rating"},
		{"bob@example.com", "Middlemarch", "c. 1850", "March 3, 2024", "5 stars"},
		{"bob@example.com ", " Arrival", "2016", "2024-01-02", "", "stray note"},
	}}
	store := newTestStore(t, fake)

	before, err := store.ReadAll(ctx)
	require.NoError(t, err)

	added := &entity.LogEntry{ID: "new", OwnerEmail: "alice@example.com", Title: "Heat", Category: entity.CategoryMovie}
	require.NoError(t, store.ReplaceAll(ctx, before.With(added), before.Version))

	after, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after.Rows, 3)

	legacy := after.Rows[0]
	assert.Equal(t, "c. 1850", legacy.Cells()[6])
	assert.Equal(t, "March 3, 2024", legacy.Cells()[7])
	assert.Equal(t, []entity.ExtraCell{{Column: "Rating", Value: "5 stars"}, {Column: "", Value: ""}}, legacy.ExtraCells())

	spaced := after.Rows[1]
	assert.Equal(t, "bob@example.com ", spaced.Cells()[1])
	assert.Equal(t, " Arrival", spaced.Cells()[2])
	assert.Equal(t, "stray note", spaced.ExtraCells()[1].Value)

	assert.Equal(t, "Heat", after.Rows[2].Title)
	assert.Equal(t, "", after.Rows[2].ExtraCells()[0].Value)
}

func TestStore_ReplaceAll_ShrinkBlanksLeftovers(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSheets{values: [][]any{
		{"ID", "User", "Title"},
		{"1", "alice@example.com", "Dune"},
		{"2", "alice@example.com", "Arrival"},
	}}
	store := newTestStore(t, fake)

	before, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(ctx, before.Without(0), before.Version))

	after, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after.Rows, 1)
	assert.Equal(t, "2", after.Rows[0].ID)
}
