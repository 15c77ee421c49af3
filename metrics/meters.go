// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"
)

// provider backs the package level meters. It stays a no-op until
// InitializePrometheusMetrics swaps in the prometheus registry.
var provider meterProvider = nopProvider{}

type meterProvider interface {
	counter(name string) CountMeter
	counterVec(name string, labels []string) CountVecMeter
	gauge(name string) GaugeMeter
	histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	handler() http.Handler
}

// Histogram buckets, in milliseconds.
var (
	BucketLedgerOps = []int64{0, 1, 2, 5, 10, 20, 50, 100, 250, 500, 1000}
	BucketHTTPReqs  = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
)

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter holds a value that can go up and down.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// HistogramVecMeter buckets observations, partitioned by labels.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// HTTPHandler serves the current meter values. Without prometheus it answers 404.
func HTTPHandler() http.Handler {
	return provider.handler()
}

func Counter(name string) CountMeter { return provider.counter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return provider.counterVec(name, labels)
}

func Gauge(name string) GaugeMeter { return provider.gauge(name) }

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return provider.histogramVec(name, labels, buckets)
}

// LazyLoad defers f to the first call, so package level meter variables
// resolve against whichever provider is installed by then.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}

type nopProvider struct{}

func (nopProvider) counter(string) CountMeter                 { return nop{} }
func (nopProvider) counterVec(string, []string) CountVecMeter { return nop{} }
func (nopProvider) gauge(string) GaugeMeter                   { return nop{} }
func (nopProvider) handler() http.Handler                     { return http.NotFoundHandler() }
func (nopProvider) histogramVec(string, []string, []int64) HistogramVecMeter {
	return nop{}
}

type nop struct{}

func (nop) Add(int64)                                  {}
func (nop) Set(int64)                                  {}
func (nop) AddWithLabel(int64, map[string]string)      {}
func (nop) ObserveWithLabels(int64, map[string]string) {}
