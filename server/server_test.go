package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/honganh1206/datetime/cache"
	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/utils"
)

type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Save(ctx context.Context, r *history.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockHistoryStore) List(ctx context.Context, limit int) ([]*history.Record, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*history.Record)
	return records, args.Error(1)
}

func (m *MockHistoryStore) Get(ctx context.Context, id string) (*history.Record, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*history.Record)
	return record, args.Error(1)
}

func newTestHandler(t *testing.T, withCache bool) (http.Handler, *MockHistoryStore, *cache.Cache) {
	t.Helper()

	store := &MockHistoryStore{}
	models := &Models{History: store}

	if withCache {
		c, err := cache.Open(cache.InMemory, 0)
		require.NoError(t, err)
		t.Cleanup(func() { c.Close() })
		models.Cache = c
	}

	return NewHandler(models), store, models.Cache
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t, false)

	rec := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth_WrongMethod(t *testing.T) {
	h, _, _ := newTestHandler(t, false)

	rec := do(t, h, http.MethodPost, "/health", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParse_Success(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Save", mock.Anything, mock.MatchedBy(func(r *history.Record) bool {
		return r.Input == "2023-10-15" && r.Format == "%Y-%m-%d" && !r.Guessed && r.Result != nil
	})).Return(nil).Once()

	rec := do(t, h, http.MethodPost, "/parse", `{"input":"2023-10-15","format":"%Y-%m-%d","out":"%d.%m.%y"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, datetime.Datetime{Year: 2023, Month: 10, Day: 15}, resp.Datetime)
	assert.Equal(t, "15/10/2023 00:00:00", resp.Text)
	assert.Equal(t, "15.10.23", resp.Formatted)
	assert.False(t, resp.Cached)
	store.AssertExpectations(t)
}

func TestParse_ErrorIsUnprocessable(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Save", mock.Anything, mock.MatchedBy(func(r *history.Record) bool {
		return r.Result == nil && r.Error != ""
	})).Return(nil).Once()

	rec := do(t, h, http.MethodPost, "/parse", `{"input":"2023-13-01","format":"%Y-%m-%d"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var d utils.Diagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "invalid_value", d.Kind)
	assert.Equal(t, "month", d.Field)
	store.AssertExpectations(t)
}

func TestParse_BadFormatHasSpan(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	rec := do(t, h, http.MethodPost, "/parse", `{"input":"2023","format":"%Q"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var d utils.Diagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "invalid_format", d.Kind)
	require.NotNil(t, d.Span)
	assert.Equal(t, 0, d.Span.Offset)
	assert.Equal(t, 2, d.Span.Length)
}

func TestParse_BadRequest(t *testing.T) {
	h, store, _ := newTestHandler(t, false)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"input":`},
		{"unknown field", `{"input":"x","format":"%Y","extra":1}`},
		{"missing format", `{"input":"2023"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/parse", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestParse_HistoryFailureDoesNotFailRequest(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	rec := do(t, h, http.MethodPost, "/parse", `{"input":"12:30","format":"%H:%M"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParse_UsesCache(t *testing.T) {
	h, store, c := newTestHandler(t, true)
	store.On("Save", mock.Anything, mock.MatchedBy(func(r *history.Record) bool {
		return r.Input == "2023-10-15" && r.Result != nil && r.Result.Year == 2023
	})).Return(nil).Twice()

	body := `{"input":"2023-10-15","format":"%Y-%m-%d"}`
	first := do(t, h, http.MethodPost, "/parse", body)
	second := do(t, h, http.MethodPost, "/parse", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.Equal(t, 2023, resp.Datetime.Year)

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestGuess_Success(t *testing.T) {
	h, store, _ := newTestHandler(t, true)
	store.On("Save", mock.Anything, mock.MatchedBy(func(r *history.Record) bool {
		return r.Guessed && r.Format == "%d/%m/%Y" && r.Result != nil
	})).Return(nil).Twice()

	rec := do(t, h, http.MethodPost, "/guess", `{"input":"15/10/2023"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GuessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "%d/%m/%Y", resp.Format)
	assert.Equal(t, datetime.Datetime{Year: 2023, Month: 10, Day: 15}, resp.Datetime)

	cached := do(t, h, http.MethodPost, "/guess", `{"input":"15/10/2023"}`)
	require.NoError(t, json.Unmarshal(cached.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	store.AssertExpectations(t)
}

func TestGuess_NoMatch(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Save", mock.Anything, mock.MatchedBy(func(r *history.Record) bool {
		return r.Guessed && r.Result == nil
	})).Return(nil).Once()

	rec := do(t, h, http.MethodPost, "/guess", `{"input":"not a date"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var d utils.Diagnostic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "no_match", d.Kind)
	store.AssertExpectations(t)
}

func TestFormats(t *testing.T) {
	h, _, _ := newTestHandler(t, false)

	rec := do(t, h, http.MethodGet, "/formats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp FormatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, datetime.Candidates(), resp.Formats)
}

func TestListHistory(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	records := []*history.Record{
		history.NewRecord("12:30", "%H:%M", false, &datetime.Datetime{Year: 1900, Month: 1, Day: 1, Hour: 12, Minute: 30}, nil),
	}
	store.On("List", mock.Anything, 5).Return(records, nil).Once()
	store.On("List", mock.Anything, defaultHistoryLimit).Return([]*history.Record{}, nil).Once()

	rec := do(t, h, http.MethodGet, "/history?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []*history.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, records[0].ID, got[0].ID)

	rec = do(t, h, http.MethodGet, "/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

func TestListHistory_BadLimit(t *testing.T) {
	h, store, _ := newTestHandler(t, false)

	rec := do(t, h, http.MethodGet, "/history?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetHistory_NotFound(t *testing.T) {
	h, store, _ := newTestHandler(t, false)
	store.On("Get", mock.Anything, "missing").Return(nil, history.ErrRecordNotFound)

	rec := do(t, h, http.MethodGet, "/history/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchema(t *testing.T) {
	h, _, _ := newTestHandler(t, false)

	rec := do(t, h, http.MethodGet, "/schema", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	for _, key := range []string{"parse_request", "parse_response", "guess_request", "guess_response", "error"} {
		assert.Contains(t, got, key)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, &Models{History: &MockHistoryStore{}})
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
