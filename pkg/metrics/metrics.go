package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors 服务级 Prometheus 指标
type Collectors struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
	SyncTotal    *prometheus.CounterVec
	SearchTotal  *prometheus.CounterVec
	SyncRecords  *prometheus.GaugeVec
}

var collectors = sync.OnceValue(func() *Collectors {
	return &Collectors{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mmpd",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mmpd",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		SyncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mmpd",
			Name:      "directory_sync_total",
			Help:      "Directory sync operations by kind and result.",
		}, []string{"kind", "result"}),
		SearchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mmpd",
			Name:      "search_total",
			Help:      "Search operations by entity type and result.",
		}, []string{"entity", "result"}),
		SyncRecords: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mmpd",
			Name:      "directory_snapshot_records",
			Help:      "Record counts of the most recent full snapshot.",
		}, []string{"entity"}),
	}
})

// Get 返回进程内唯一的指标集合
func Get() *Collectors {
	return collectors()
}

// ObserveSync 记录一次同步操作
func ObserveSync(kind string, err error) {
	Get().SyncTotal.WithLabelValues(kind, result(err)).Inc()
}

// ObserveSearch 记录某实体类型的一次搜索
func ObserveSearch(entity string, err error) {
	Get().SearchTotal.WithLabelValues(entity, result(err)).Inc()
}

// SetSnapshotCounts 更新最近一次全量快照的记录数
func SetSnapshotCounts(locations, departments, employees int) {
	g := Get().SyncRecords
	g.WithLabelValues("locations").Set(float64(locations))
	g.WithLabelValues("departments").Set(float64(departments))
	g.WithLabelValues("employees").Set(float64(employees))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
