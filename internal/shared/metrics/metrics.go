package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registry is private so /metrics only exposes fleet series plus runtime
// collectors, independent of anything registered on the global default.
var registry = prometheus.NewRegistry()

var (
	approvalTransitionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "approval_transitions_total",
		Help: "Total recommendation approval changes",
	})
	serviceRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_requests_total",
		Help: "Total service requests accepted",
	})
	serviceRequestsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "service_requests_failed_total",
		Help: "Total service requests that failed delivery",
	})
	vehiclesImportedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vehicles_imported_total",
		Help: "Total vehicles created by bulk import",
	})
	vehicleImportRowsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vehicle_import_rows_skipped_total",
		Help: "Total import rows skipped for missing fields",
	})
	webhookDelivery = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "webhook_delivery_ms",
		Help:    "Webhook delivery duration in milliseconds",
		Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)

func init() {
	registry.MustRegister(
		approvalTransitionsTotal,
		serviceRequestsTotal,
		serviceRequestsFailedTotal,
		vehiclesImportedTotal,
		vehicleImportRowsSkipped,
		webhookDelivery,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncApprovalTransition counts one recommendation approval change.
func IncApprovalTransition() {
	approvalTransitionsTotal.Inc()
}

// IncServiceRequest counts an accepted service request.
func IncServiceRequest() {
	serviceRequestsTotal.Inc()
}

// IncServiceRequestFailed counts a service request whose delivery failed.
func IncServiceRequestFailed() {
	serviceRequestsFailedTotal.Inc()
}

// AddVehiclesImported adds imported and skipped row counts from a bulk import.
func AddVehiclesImported(imported, skipped int) {
	if imported > 0 {
		vehiclesImportedTotal.Add(float64(imported))
	}
	if skipped > 0 {
		vehicleImportRowsSkipped.Add(float64(skipped))
	}
}

// ObserveWebhookDurationMs records a webhook delivery duration in milliseconds.
func ObserveWebhookDurationMs(value float64) {
	webhookDelivery.Observe(max(value, 0))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}

// Since returns the milliseconds elapsed since start.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
