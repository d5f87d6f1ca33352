package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(drawsTotal)
	RecordDraw()
	assert.Equal(t, before+1, testutil.ToFloat64(drawsTotal))

	invalid := testutil.ToFloat64(claimsTotal.WithLabelValues("invalid"))
	RecordClaim(false)
	assert.Equal(t, invalid+1, testutil.ToFloat64(claimsTotal.WithLabelValues("invalid")))

	exhausted := testutil.ToFloat64(sessionsTotal.WithLabelValues("finished_exhausted"))
	RecordSessionFinished("exhausted")
	assert.Equal(t, exhausted+1, testutil.ToFloat64(sessionsTotal.WithLabelValues("finished_exhausted")))

	open := testutil.ToFloat64(connections)
	ConnectionOpened()
	ConnectionClosed()
	assert.Equal(t, open, testutil.ToFloat64(connections))

	ObserveHTTPRequest("GET", "/api/v1/sessions", "200", 3*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/sessions", "200")))
}
