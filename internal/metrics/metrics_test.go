package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200"))

	RecordAPIRequest(http.MethodGet, "/api/v1/recipes", http.StatusOK, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordPlanGeneration(t *testing.T) {
	tests := []string{"ok", "insufficient", "error"}
	for _, outcome := range tests {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(PlansGenerated.WithLabelValues(outcome))
			RecordPlanGeneration(outcome)
			assert.Equal(t, before+1, testutil.ToFloat64(PlansGenerated.WithLabelValues(outcome)))
		})
	}
}
