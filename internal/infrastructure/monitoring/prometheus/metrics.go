package prometheus

import "time"

// AppMetrics holds every metric the service records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Correlation layer
	DerivationTotal      CounterVec
	AnalysisDuration     HistogramVec
	TreeBuildDuration    HistogramVec
	ClaimsTotal          GaugeVec
	MissingEvidenceTotal GaugeVec

	// Extraction layer
	ExtractionRequestsTotal CounterVec
	ExtractionDuration      HistogramVec

	// Storage layer
	DocumentUploadsTotal CounterVec
	DocumentUploadBytes  HistogramVec

	// Infrastructure
	DBQueryDuration  HistogramVec
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	ErrorsTotal      CounterVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultAIDurationBuckets   = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
	DefaultSizeBuckets         = []float64{1000, 10000, 100000, 1000000, 10000000, 100000000}
)

// NewAppMetrics registers the full metric set on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	m.DerivationTotal = collector.RegisterCounter("claim_derivations_total", "Claim status derivations executed", "status")
	m.AnalysisDuration = collector.RegisterHistogram("case_analysis_duration_seconds", "Case analysis computation duration", DefaultHTTPDurationBuckets, "cached")
	m.TreeBuildDuration = collector.RegisterHistogram("exhibit_tree_build_duration_seconds", "Exhibit tree build duration", DefaultHTTPDurationBuckets, "cached")
	m.ClaimsTotal = collector.RegisterGauge("case_claims_total", "Claims per case at last analysis", "case_id")
	m.MissingEvidenceTotal = collector.RegisterGauge("case_missing_mandatory_evidence", "Claims with missing mandatory evidence at last analysis", "case_id")

	m.ExtractionRequestsTotal = collector.RegisterCounter("extraction_requests_total", "AI extraction requests", "status")
	m.ExtractionDuration = collector.RegisterHistogram("extraction_duration_seconds", "AI extraction duration", DefaultAIDurationBuckets, "model")

	m.DocumentUploadsTotal = collector.RegisterCounter("document_uploads_total", "Evidence document uploads", "status")
	m.DocumentUploadBytes = collector.RegisterHistogram("document_upload_bytes", "Evidence document size", DefaultSizeBuckets, "content_type")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "query")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by code", "code")

	return m
}

// ObserveDuration records the elapsed time since start on a histogram.
func ObserveDuration(h Histogram, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}
