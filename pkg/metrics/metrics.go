package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for resume downloads
const (
	DownloadServed       = "served"
	DownloadMissingRow   = "missing_record"
	DownloadMissingBlob  = "missing_file"
	DownloadStorageError = "error"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total number of job applications stored",
		},
	)

	ApplicationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_rejected_total",
			Help: "Total number of apply requests refused, by reason",
		},
		[]string{"reason"},
	)

	ResumeDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_downloads_total",
			Help: "Total number of resume download attempts, by result",
		},
		[]string{"result"},
	)
)
