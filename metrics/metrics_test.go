package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrdersAdmittedIncrementsAndScrapes(t *testing.T) {
	m := New()
	m.OrdersAdmitted.WithLabelValues("XYZ", "enter").Inc()
	m.TradesExecuted.WithLabelValues("XYZ").Add(3)
	m.Set("XYZ", 7)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	require.Contains(t, body, "cdaflow_orders_admitted_total")
	require.Contains(t, body, "cdaflow_trades_executed_total")
	require.Contains(t, body, "cdaflow_queue_depth")
}
