// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	ApplicationsQueried = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_applications_queried_total",
			Help: "Total number of application records returned by dashboard queries",
		},
		[]string{"sort_key"},
	)

	RosterRowsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_rows_ingested_total",
			Help: "Total roster rows processed at intake",
		},
		[]string{"outcome"},
	)

	VerificationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credentialing_verification_outcomes_total",
			Help: "Credentialing verification runs by compliance status",
		},
		[]string{"status"},
	)
)
