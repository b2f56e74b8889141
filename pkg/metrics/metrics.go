package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// этапы задания
const (
	StageLoad  = "load"
	StageSort  = "sort"
	StageWrite = "write"
)

// Metrics - прометеус метрики одного запуска, живут в собственном реестре
type Metrics struct {
	Registry *prometheus.Registry

	// время этапов задания
	stageDuration *prometheus.HistogramVec
	// строк в главном списке
	lines *prometheus.CounterVec
	// прочитанные и неоткрывшиеся файлы
	filesRead  *prometheus.CounterVec
	fileErrors *prometheus.CounterVec
}

// New создаёт реестр и регистрирует в нём метрики
func New() *Metrics {

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "linesorter_stage_duration_seconds",
			Help:    "Время выполнения этапов задания",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"job", "stage"}), // stage: load, sort, write
		lines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linesorter_lines_total",
			Help: "Количество строк, отсортированных заданием",
		}, []string{"job"}),
		filesRead: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linesorter_files_read_total",
			Help: "Количество успешно прочитанных входных файлов",
		}, []string{"job"}),
		fileErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linesorter_file_errors_total",
			Help: "Количество входных файлов, которые не удалось открыть",
		}, []string{"job"}),
	}
}

// ObserveStage записывает длительность этапа задания
func (m *Metrics) ObserveStage(job, stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(job, stage).Observe(d.Seconds())
}

// AddLoad записывает итоги загрузки задания
func (m *Metrics) AddLoad(job string, files, failed, lines int) {

	m.filesRead.WithLabelValues(job).Add(float64(files))
	m.fileErrors.WithLabelValues(job).Add(float64(failed))
	m.lines.WithLabelValues(job).Add(float64(lines))
}

// WriteFile сохраняет метрики в текстовом формате прометеуса (для node_exporter textfile)
func (m *Metrics) WriteFile(path string) error {

	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("ошибка записи метрик в %s: %w", path, err)
	}

	return nil
}
