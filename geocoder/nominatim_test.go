package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"themisai-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Nominatim, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	base := []Option{WithBaseURL(srv.URL), WithMinInterval(0), WithLogger(logger.NewForTests())}
	n, err := NewNominatim(append(base, opts...)...)
	require.NoError(t, err)
	return n, &calls
}

func TestResolve_Found(t *testing.T) {
	n, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Jakarta Selatan", q.Get("q"))
		assert.Equal(t, "jsonv2", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "id", q.Get("countrycodes"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"-6.2615","lon":"106.8106","display_name":"Jakarta Selatan, DKI Jakarta"}]`))
	}, WithUserAgent("test-agent/1.0"))

	res := n.Resolve(context.Background(), "Jakarta Selatan")
	require.True(t, res.Found())
	assert.InDelta(t, -6.2615, res.Point.Lat, 1e-9)
	assert.InDelta(t, 106.8106, res.Point.Lon, 1e-9)
	assert.Equal(t, "Jakarta Selatan, DKI Jakarta", res.DisplayName)
}

func TestResolve_EmptyAddressSkipsNetwork(t *testing.T) {
	n, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	res := n.Resolve(context.Background(), "   ")
	assert.False(t, res.Found())
	assert.Equal(t, StatusEmptyAddress, res.Status)
	assert.Zero(t, calls.Load())
}

func TestResolve_NotFound(t *testing.T) {
	n, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	res := n.Resolve(context.Background(), "Atlantis")
	assert.False(t, res.Found())
	assert.Equal(t, StatusNotFound, res.Status)
	assert.NoError(t, res.Err)
}

func TestResolve_ServiceErrorSingleAttempt(t *testing.T) {
	n, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	res := n.Resolve(context.Background(), "Bandung")
	assert.False(t, res.Found())
	assert.Equal(t, StatusServiceError, res.Status)
	assert.Error(t, res.Err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolve_MalformedCoordinates(t *testing.T) {
	n, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"north","lon":"106.8"}]`))
	})

	res := n.Resolve(context.Background(), "Bandung")
	assert.Equal(t, StatusServiceError, res.Status)
}

func TestResolve_CachesNormalisedAddress(t *testing.T) {
	n, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"-6.9","lon":"107.6"}]`))
	}, WithCacheSize(8))

	first := n.Resolve(context.Background(), "Jl. Asia Afrika, Bandung")
	second := n.Resolve(context.Background(), "  jl. asia   afrika, BANDUNG ")
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolve_ServiceErrorsAreNotCached(t *testing.T) {
	n, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, WithCacheSize(8))

	n.Resolve(context.Background(), "Medan")
	n.Resolve(context.Background(), "Medan")
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewNominatim_RequiresUserAgent(t *testing.T) {
	_, err := NewNominatim(WithUserAgent(""))
	assert.Error(t, err)
}
