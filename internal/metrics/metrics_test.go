package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe("rent_resource", "ok", 5*time.Millisecond)
	r.Observe("rent_resource", "ok", 5*time.Millisecond)
	r.Observe("rent_resource", "resource_unavailable", time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("rent_resource", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("rent_resource", "resource_unavailable")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Observe("create_project", "ok", time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `rentledger_operations_total{operation="create_project",outcome="ok"} 1`))
}

func TestOrNop(t *testing.T) {
	require.Equal(t, Nop{}, OrNop(nil))
	r := NewRecorder()
	require.Same(t, r, OrNop(r))
}
