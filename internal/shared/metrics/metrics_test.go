package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// sample returns the value of an unlabelled series line such as "name 3".
func sample(t *testing.T, body, series string) float64 {
	t.Helper()
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(series) + ` (\S+)$`)
	m := re.FindStringSubmatch(body)
	require.NotNil(t, m, "series %s missing from:\n%s", series, body)
	v, err := strconv.ParseFloat(m[1], 64)
	require.NoError(t, err)
	return v
}

func TestHandlerExposesFleetSeries(t *testing.T) {
	body := scrape(t)
	for _, name := range []string{
		"approval_transitions_total",
		"service_requests_total",
		"service_requests_failed_total",
		"vehicles_imported_total",
		"vehicle_import_rows_skipped_total",
		`webhook_delivery_ms_bucket{le="+Inf"}`,
		"go_goroutines",
	} {
		assert.Contains(t, body, name)
	}
}

func TestCountersAdvance(t *testing.T) {
	before := scrape(t)
	IncApprovalTransition()
	IncServiceRequest()
	IncServiceRequestFailed()
	AddVehiclesImported(2, 1)
	AddVehiclesImported(0, -4)
	after := scrape(t)

	delta := func(series string) float64 {
		return sample(t, after, series) - sample(t, before, series)
	}
	assert.Equal(t, 1.0, delta("approval_transitions_total"))
	assert.Equal(t, 1.0, delta("service_requests_total"))
	assert.Equal(t, 1.0, delta("service_requests_failed_total"))
	assert.Equal(t, 2.0, delta("vehicles_imported_total"))
	assert.Equal(t, 1.0, delta("vehicle_import_rows_skipped_total"))
}

func TestWebhookHistogramBuckets(t *testing.T) {
	before := scrape(t)
	ObserveWebhookDurationMs(-3)
	ObserveWebhookDurationMs(40)
	ObserveWebhookDurationMs(20000)
	after := scrape(t)

	delta := func(series string) float64 {
		return sample(t, after, series) - sample(t, before, series)
	}
	assert.Equal(t, 1.0, delta(`webhook_delivery_ms_bucket{le="25"}`))
	assert.Equal(t, 2.0, delta(`webhook_delivery_ms_bucket{le="50"}`))
	assert.Equal(t, 2.0, delta(`webhook_delivery_ms_bucket{le="10000"}`))
	assert.Equal(t, 3.0, delta("webhook_delivery_ms_count"))
	assert.Equal(t, 20040.0, delta("webhook_delivery_ms_sum"))
}

func TestSince(t *testing.T) {
	assert.GreaterOrEqual(t, Since(time.Now().Add(-5*time.Millisecond)), 5.0)
}
