package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 进程内指标集合，使用独立的 Registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LoginAttempts       *prometheus.CounterVec
	ListingsGenerated   *prometheus.CounterVec
	ListingsSaved       *prometheus.CounterVec
	LearningCorrections prometheus.Counter
	QuotesSubmitted     *prometheus.CounterVec
	UploadsTotal        *prometheus.CounterVec
	ExcelExports        *prometheus.CounterVec
}

// New 创建指标集合，prefix 为空时使用 craftshowcase
func New(prefix string) *Metrics {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "craftshowcase"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_admin_login_attempts_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
		ListingsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_listings_generated_total",
			Help: "Vision generations by result",
		}, []string{"result"}),
		ListingsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_listings_saved_total",
			Help: "Listing writes by operation",
		}, []string{"operation"}),
		LearningCorrections: factory.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_learning_corrections_total",
			Help: "Human corrections recorded into the learning log",
		}),
		QuotesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_quotes_submitted_total",
			Help: "Quote requests by result",
		}, []string{"result"}),
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_uploads_total",
			Help: "Uploaded image files by result",
		}, []string{"result"}),
		ExcelExports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_excel_exports_total",
			Help: "Excel exports by trigger",
		}, []string{"trigger"}),
	}
}

// Registry 返回底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// RecordLogin 记录登录结果
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordGeneration 记录生成结果
func (m *Metrics) RecordGeneration(result string) {
	if m == nil {
		return
	}
	m.ListingsGenerated.WithLabelValues(result).Inc()
}

// RecordListingSave 记录商品写入
func (m *Metrics) RecordListingSave(operation string) {
	if m == nil {
		return
	}
	m.ListingsSaved.WithLabelValues(operation).Inc()
}

// RecordCorrection 记录一次人工修正
func (m *Metrics) RecordCorrection() {
	if m == nil {
		return
	}
	m.LearningCorrections.Inc()
}

// RecordQuote 记录询价结果
func (m *Metrics) RecordQuote(result string) {
	if m == nil {
		return
	}
	m.QuotesSubmitted.WithLabelValues(result).Inc()
}

// RecordUpload 记录上传文件数
func (m *Metrics) RecordUpload(result string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.UploadsTotal.WithLabelValues(result).Add(float64(count))
}

// RecordExport 记录 Excel 导出
func (m *Metrics) RecordExport(trigger string) {
	if m == nil {
		return
	}
	m.ExcelExports.WithLabelValues(trigger).Inc()
}
