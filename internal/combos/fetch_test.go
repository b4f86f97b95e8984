package combos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nimixiss/tarobot/internal/errors"
)

func TestFetchTwoCard_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"A|B": "text"}`))
	}))
	defer srv.Close()

	got, err := FetchTwoCard(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{PairKey("A", "B"): "text"}, got)
}

func TestFetchTwoCard_HTTPErrorDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got, err := FetchTwoCard(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstreamUnavailable))
	assert.Empty(t, got)
	assert.NotNil(t, got, "degraded mode still hands back a usable empty map")
}

func TestFetchTwoCard_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{broken`))
	}))
	defer srv.Close()

	got, err := FetchTwoCard(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestFetchTwoCard_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := FetchTwoCard(ctx, srv.Client(), srv.URL)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstreamUnavailable))
	assert.Empty(t, got)
}
