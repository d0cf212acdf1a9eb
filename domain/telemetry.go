package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// doppler_incentive_worker_compute_error_total
	//
	// counter that measures the number of errors that occur during bulk incentive computation
	//
	// Has the following labels:
	// * position_id - the identifier of the position being computed
	DopplerIncentiveWorkerComputeErrorMetricName = "doppler_incentive_worker_compute_error_total"

	// doppler_incentive_worker_compute_duration
	//
	// gauge that tracks duration of bulk incentive computation in milliseconds
	DopplerIncentiveWorkerComputeDurationMetricName = "doppler_incentive_worker_compute_duration"

	// doppler_incentives_cache_hits_total
	//
	// counter that measures the number of incentive view cache hits
	//
	// Has the following labels:
	// * route - the request path that triggered the computation
	DopplerIncentivesCacheHitsCounterMetricName = "doppler_incentives_cache_hits_total"

	// doppler_incentives_cache_misses_total
	//
	// counter that measures the number of incentive view cache misses
	//
	// Has the following labels:
	// * route - the request path that triggered the computation
	DopplerIncentivesCacheMissesCounterMetricName = "doppler_incentives_cache_misses_total"

	DopplerIncentiveWorkerComputeErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: DopplerIncentiveWorkerComputeErrorMetricName,
			Help: "counter that measures the number of errors that occur during bulk incentive computation",
		},
	)

	DopplerIncentiveWorkerComputeDurationGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: DopplerIncentiveWorkerComputeDurationMetricName,
			Help: "gauge that tracks duration of bulk incentive computation in milliseconds",
		},
	)

	DopplerIncentivesCacheHitsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DopplerIncentivesCacheHitsCounterMetricName,
			Help: "Total number of incentive view cache hits",
		},
		[]string{"route"},
	)

	DopplerIncentivesCacheMissesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DopplerIncentivesCacheMissesCounterMetricName,
			Help: "Total number of incentive view cache misses",
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(DopplerIncentiveWorkerComputeErrorCounter)
	prometheus.MustRegister(DopplerIncentiveWorkerComputeDurationGauge)
	prometheus.MustRegister(DopplerIncentivesCacheHitsCounter)
	prometheus.MustRegister(DopplerIncentivesCacheMissesCounter)
}
