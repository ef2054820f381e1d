// Copyright 2026 The GNP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

// Package processmetrics exports scheduling metrics of the router process
// that prometheus.ProcessCollector lacks: the CPU time all threads spent
// running and the time they spent runnable but waiting for a core. The
// event loop runs on a single goroutine, so runnable time is a direct
// measure of how much the host starves the router.
//
// Only Linux is supported. Elsewhere NewCollector returns an error.
package processmetrics

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

var (
	runningTime = prometheus.NewDesc(
		"process_running_seconds_total",
		"CPU time the process used since it started (all threads summed).",
		nil, nil,
	)
	runnableTime = prometheus.NewDesc(
		"process_runnable_seconds_total",
		"CPU time the process was runnable but not running since it started "+
			"(all threads summed).",
		nil, nil,
	)
	maxProcs = prometheus.NewDesc(
		"go_sched_maxprocs_threads",
		"The current runtime.GOMAXPROCS setting.",
		nil, nil,
	)
)

type collector struct {
	pid   int
	tasks *os.File
	procs procfs.Procs
	// taskCount is the thread count procs was listed for. Go never ends
	// threads, so an unchanged count means an unchanged list.
	taskCount uint64

	running  uint64
	runnable uint64
}

// NewCollector creates a collector for the current process.
func NewCollector() (prometheus.Collector, error) {
	pid := os.Getpid()
	path := filepath.Join(procfs.DefaultMountPoint, strconv.Itoa(pid), "task")
	tasks, err := os.Open(path)
	if err != nil {
		return nil, serrors.Wrap("opening task directory", err, "path", path)
	}
	c := &collector{pid: pid, tasks: tasks}
	if err := c.update(); err != nil {
		tasks.Close()
		return nil, serrors.Wrap("reading scheduler statistics", err, "pid", pid)
	}
	return c, nil
}

// Init registers a collector for the current process with reg. Callers may
// ignore the error; only these metrics are missing then.
func Init(reg prometheus.Registerer) error {
	c, err := NewCollector()
	if err != nil {
		return err
	}
	if err := reg.Register(c); err != nil {
		return serrors.Wrap("registering process metrics", err)
	}
	return nil
}

func (c *collector) update() error {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(c.tasks.Fd()), &st); err != nil {
		return err
	}
	//nolint:unconvert // Nlink is uint32 on some architectures.
	count := uint64(st.Nlink) - 2
	if count != c.taskCount || c.procs == nil {
		procs, err := procfs.AllThreads(c.pid)
		if err != nil {
			return err
		}
		c.procs, c.taskCount = procs, count
	}

	var running, runnable uint64
	var err error
	for _, p := range c.procs {
		ss, serr := p.Schedstat()
		if serr != nil {
			// The thread is gone. The others are still valid.
			err = serr
			continue
		}
		running += ss.RunningNanoseconds
		runnable += ss.WaitingNanoseconds
	}
	c.running, c.runnable = running, runnable
	return err
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	_ = c.update()
	ch <- prometheus.MustNewConstMetric(runningTime, prometheus.CounterValue,
		float64(c.running)/1e9)
	ch <- prometheus.MustNewConstMetric(runnableTime, prometheus.CounterValue,
		float64(c.runnable)/1e9)
	ch <- prometheus.MustNewConstMetric(maxProcs, prometheus.GaugeValue,
		float64(runtime.GOMAXPROCS(-1)))
}
