package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveBusinessProcess(t *testing.T) {
	prev := MetricsBusinessProcess.MetricCollector
	t.Cleanup(func() { MetricsBusinessProcess.MetricCollector = prev })

	MetricsBusinessProcess.MetricCollector = nil
	require.NotPanics(t, func() { ObserveBusinessProcess("mollie", "check", time.Now()) })

	h := NewMetric(MetricsBusinessProcess, "test")
	MetricsBusinessProcess.MetricCollector = h
	ObserveBusinessProcess("mollie", "check", time.Now().Add(-20*time.Millisecond))
	ObserveBusinessProcess("mollie", "fetch", time.Now())

	require.Equal(t, 2, testutil.CollectAndCount(h))
}

func TestMillisecondsSince(t *testing.T) {
	ms := MillisecondsSince(time.Now().Add(-1500 * time.Millisecond))
	require.GreaterOrEqual(t, ms, 1500.0)
	require.Less(t, ms, 60000.0)
}
