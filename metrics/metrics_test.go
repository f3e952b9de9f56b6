// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopByDefault(t *testing.T) {
	// meters on the default noop service are callable and inert
	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"k"}).AddWithLabel(1, map[string]string{"k": "v"})
	Gauge("noop_gauge").Set(42)
	Histogram("noop_hist", BucketSteps).Observe(7)
	assert.Nil(t, HTTPHandler())
}

func TestLazyLoadCachesMeter(t *testing.T) {
	load := LazyLoadCounter("lazy_count")
	assert.Same(t, load(), load())
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("exec_count").Add(3)
	CounterVec("exec_outcome_count", []string{"outcome"}).
		AddWithLabel(1, map[string]string{"outcome": "ok"})
	Gauge("mem_gauge").Set(10)
	Histogram("steps_hist", BucketSteps).Observe(123)

	handler := HTTPHandler()
	require.NotNil(t, handler)

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "purevm_metrics_exec_count 3"))
	assert.True(t, strings.Contains(text, `purevm_metrics_exec_outcome_count{outcome="ok"} 1`))
	assert.True(t, strings.Contains(text, "purevm_metrics_mem_gauge 10"))
	assert.True(t, strings.Contains(text, "purevm_metrics_steps_hist_count 1"))

	// getting the same name again returns the registered meter
	Counter("exec_count").Add(1)
}
