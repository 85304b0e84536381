package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.AuthAttempt("login", "succeeded")
	p.AuthAttempt("login", "failed")
	p.AuthAttempt("login", "failed")
	p.RequestSigned(true)
	p.RequestSigned(false)
	p.GateDecision(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.authAttempts.WithLabelValues("login", "succeeded")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.authAttempts.WithLabelValues("login", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.signedRequests.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.signedRequests.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.gateDecisions.WithLabelValues("redirect")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.gateDecisions.WithLabelValues("render")))
}

func TestPrometheus_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}
