package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(generationRuns.WithLabelValues(ResultSkipped))
	RecordGeneration(ResultSkipped)
	RecordGeneration(ResultSkipped)
	assert.Equal(t, before+2, testutil.ToFloat64(generationRuns.WithLabelValues(ResultSkipped)))
}

func TestRecordRerolls_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(generationRerolls)
	RecordRerolls(0)
	RecordRerolls(2)
	assert.Equal(t, before+2, testutil.ToFloat64(generationRerolls))
}

func TestRecordPartialWrite_FixedStages(t *testing.T) {
	RecordPartialWrite(StageDated)
	RecordPartialWrite(StageCurrent)

	assert.GreaterOrEqual(t, testutil.ToFloat64(partialWrites.WithLabelValues(StageDated)), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(partialWrites.WithLabelValues(StageCurrent)), 1.0)
	assert.LessOrEqual(t, testutil.CollectAndCount(partialWrites), 2, "one series per stage")
}

func TestRecordRepair(t *testing.T) {
	before := testutil.ToFloat64(repairs)
	RecordRepair()
	assert.Equal(t, before+1, testutil.ToFloat64(repairs))
}

func TestSetLedgerSize(t *testing.T) {
	SetLedgerSize(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(ledgerSize))
}

func TestRecordRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404"))
	RecordRequest("", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordGeneration(ResultSuccess)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "qiyaas_generation_runs_total")
}
