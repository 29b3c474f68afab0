package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/platform/metrics"
)

func TestCountersTrackEngineActivity(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.SessionResolved("completed")
	m.SessionResolved("completed")
	m.SessionResolved("failed")
	m.PassRedeemed("break-1")
	m.CoinsMoved("credit", 30)
	m.CoinsMoved("debit", 0)
	m.NotificationSent("slack", nil)
	m.NotificationSent("slack", errors.New("boom"))

	series, err := testutil.GatherAndCount(m.Registry(), "focusflow_sessions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
	body := scrape(t, m)
	assert.Contains(t, body, `focusflow_sessions_total{outcome="completed"} 2`)
	assert.Contains(t, body, `focusflow_passes_redeemed_total{kind="break-1"} 1`)
	assert.Contains(t, body, `focusflow_coins_total{direction="credit"} 30`)
	assert.NotContains(t, body, `direction="debit"`)
	assert.Contains(t, body, `focusflow_notifications_total{result="error",sink="slack"} 1`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}
