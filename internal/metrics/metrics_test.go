package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersExposed(t *testing.T) {
	Redirects.WithLabelValues("tick").Inc()

	Delegations.WithLabelValues("random_tick", "background").Inc()
	RandomTicksSkipped.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `osv_redirects_total{kind="tick"}`))
	assert.True(t, strings.Contains(body, "osv_delegations_total"))
	assert.True(t, strings.Contains(body, "osv_random_ticks_skipped_total"))
}
