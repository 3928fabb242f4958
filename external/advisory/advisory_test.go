package advisory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinsync/triage-api/external/advisory"
	"github.com/clinsync/triage-api/schema"
)

func TestAnnotate(t *testing.T) {
	report := schema.AdvisoryReport{
		Narrative:   "presentation consistent with reactivation",
		FusionScore: 52.4,
		Confidence:  0.83,
		Anomalies:   []string{"weight trend inconsistent with reported appetite"},
		Action:      "expedite sputum collection",
		Impacts: []schema.FeatureImpact{
			{Feature: "cavitation", Impact: 0.4},
		},
		GeneratedAt: 1717171717,
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/annotate", r.URL.Path, "wrong path")
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"), "wrong auth header")

		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload), "wrong prompt payload")

		b, _ := json.Marshal(map[string]interface{}{
			"status": "ok",
			"report": report,
		})
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	c := advisory.New(ts.URL, "test", nil)
	actual, err := c.Annotate(schema.CaseRecord{ID: "c1", Score: 45, Category: "high"})
	assert.Nil(t, err, "wrong Annotate")
	assert.Equal(t, &report, actual, "wrong report")
}

func TestAnnotateServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}))
	defer ts.Close()

	c := advisory.New(ts.URL, "test", nil)
	_, err := c.Annotate(schema.CaseRecord{ID: "c1"})
	assert.Equal(t, advisory.ErrResponseStatus, err, "wrong error")
}
