package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PriceCalcTotal counts price calculation outcomes.
	PriceCalcTotal *prometheus.CounterVec
	// PriceCalcDuration records price calculation latency in milliseconds.
	PriceCalcDuration prometheus.Histogram
	// PriceCacheTotal counts calculated-price cache lookups by outcome.
	PriceCacheTotal *prometheus.CounterVec
	// OrderRepriceTotal counts background order repricing outcomes.
	OrderRepriceTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PriceCalcTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_calculations_total",
			Help:      "Count of price calculation outcomes.",
		}, []string{"result"})
		PriceCalcDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_calculation_duration_ms",
			Help:      "Latency of price calculations in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		})
		PriceCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_cache_total",
			Help:      "Count of calculated-price cache lookups by outcome.",
		}, []string{"outcome"})
		OrderRepriceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_reprice_total",
			Help:      "Count of background order repricing outcomes.",
		}, []string{"result"})

		mustRegisterCollector(reg, PriceCalcTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PriceCalcTotal = v
			}
		})
		mustRegisterCollector(reg, PriceCalcDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				PriceCalcDuration = v
			}
		})
		mustRegisterCollector(reg, PriceCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PriceCacheTotal = v
			}
		})
		mustRegisterCollector(reg, OrderRepriceTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderRepriceTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
