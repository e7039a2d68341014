package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStep(t *testing.T) {
	r := New()
	r.ObserveStep(2*time.Millisecond, nil)
	r.ObserveStep(3*time.Millisecond, nil)
	r.ObserveStep(time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StepFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(r.StepDuration))
}

func TestObserveField(t *testing.T) {
	r := New()
	r.ObserveField(12.5, 0.75)
	assert.Equal(t, 12.5, testutil.ToFloat64(r.Energy))
	assert.Equal(t, 0.75, testutil.ToFloat64(r.MaxHeight))
}

func TestSetSessionReplacesLabels(t *testing.T) {
	r := New()
	r.SetSession("cpu (4 workers)", "100x100")
	r.SetSession("gl compute", "100x100")
	assert.Equal(t, 1, testutil.CollectAndCount(r.Info))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Info.WithLabelValues("gl compute", "100x100")))
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveStep(time.Millisecond, nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Steps))
}

func TestHandlerServesMetrics(t *testing.T) {
	r := New()
	r.ObserveStep(time.Millisecond, nil)
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "wave_steps_total 1")
	assert.Contains(t, string(body), "wave_step_duration_seconds_bucket")
}
