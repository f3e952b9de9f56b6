// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import "github.com/vechain/purevm/metrics"

var (
	metricExecCount  = metrics.LazyLoadCounterVec("vm_exec_count", []string{"outcome"})
	metricExecSteps  = metrics.LazyLoadHistogram("vm_exec_steps", metrics.BucketSteps)
	metricPeakMemory = metrics.LazyLoadHistogram("vm_exec_peak_memory_bytes", metrics.BucketMemory)
)

func recordExec(ctx *Context, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case ctx.reverted:
		outcome = "revert"
	}
	metricExecCount().AddWithLabel(1, map[string]string{"outcome": outcome})
	metricExecSteps().Observe(int64(ctx.steps))
	metricPeakMemory().Observe(int64(ctx.mem.len()))
}
