// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/nftstaking/log"
)

const namespace = "nftstaking_metrics"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics installs the prometheus backed provider.
// Calling it again keeps the registry already installed.
func InitializePrometheusMetrics() {
	if _, ok := provider.(*prometheusMetrics); !ok {
		provider = &prometheusMetrics{}
	}
}

type prometheusMetrics struct {
	counters      sync.Map
	counterVecs   sync.Map
	histogramVecs sync.Map
	gauges        sync.Map
}

// getOrCreate loads the meter registered under name, creating it on first use.
func getOrCreate[T any](m *sync.Map, name string, create func() T) T {
	if item, ok := m.Load(name); ok {
		return item.(T)
	}
	item, _ := m.LoadOrStore(name, create())
	return item.(T)
}

func register(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		logger.Warn("unable to register metric", "err", err)
	}
}

func (o *prometheusMetrics) handler() http.Handler {
	return promhttp.Handler()
}

func (o *prometheusMetrics) counter(name string) CountMeter {
	return getOrCreate(&o.counters, name, func() CountMeter {
		meter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		})
		register(meter)
		return &promCountMeter{counter: meter}
	})
}

func (o *prometheusMetrics) counterVec(name string, labels []string) CountVecMeter {
	return getOrCreate(&o.counterVecs, name, func() CountVecMeter {
		meter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		}, labels)
		register(meter)
		return &promCountVecMeter{counter: meter}
	})
}

func (o *prometheusMetrics) gauge(name string) GaugeMeter {
	return getOrCreate(&o.gauges, name, func() GaugeMeter {
		meter := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
		})
		register(meter)
		return &promGaugeMeter{gauge: meter}
	})
}

func (o *prometheusMetrics) histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return getOrCreate(&o.histogramVecs, name, func() HistogramVecMeter {
		floatBuckets := make([]float64, 0, len(buckets))
		for _, bucket := range buckets {
			floatBuckets = append(floatBuckets, float64(bucket))
		}
		meter := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets,
		}, labels)
		register(meter)
		return &promHistogramVecMeter{histogram: meter}
	})
}

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (c *promHistogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	c.histogram.With(labels).Observe(float64(i))
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (c *promCountMeter) Add(i int64) {
	c.counter.Add(float64(i))
}

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (c *promGaugeMeter) Add(i int64) {
	c.gauge.Add(float64(i))
}

func (c *promGaugeMeter) Set(i int64) {
	c.gauge.Set(float64(i))
}
