package usecases

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess    = "success"
	resultRejected   = "rejected"
	resultRolledBack = "rolled_back"
	resultFailed     = "failed"
)

type metricsIngestion struct {
	once sync.Once

	ingestions       *prometheus.CounterVec
	compensations    *prometheus.CounterVec
	commitsIngested  prometheus.Counter
	emailsRegistered prometheus.Counter

	extractDuration prometheus.Histogram
	ingestDuration  prometheus.Histogram
}

var ingMetrics metricsIngestion

func (m *metricsIngestion) init() {
	m.once.Do(func() {
		m.ingestions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "git_service_ingestions_total",
			Help: "Ingestion calls by outcome",
		}, []string{"result"})
		m.compensations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "git_service_compensations_total",
			Help: "Compensating deletes by outcome",
		}, []string{"result"})
		m.commitsIngested = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "git_service_commits_ingested_total",
			Help: "Commits persisted by successful ingestions",
		})
		m.emailsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "git_service_emails_registered_total",
			Help: "Contributor emails registered for the first time",
		})

		m.extractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "git_service_extract_seconds",
			Help:    "Clone and history walk duration",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
		})
		m.ingestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "git_service_ingest_seconds",
			Help:    "End to end ingestion duration",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
		})

		prometheus.MustRegister(
			m.ingestions, m.compensations, m.commitsIngested, m.emailsRegistered,
			m.extractDuration, m.ingestDuration,
		)
	})
}
