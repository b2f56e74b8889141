package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/IPampurin/LineSorter/pkg/comparer"
	"github.com/IPampurin/LineSorter/pkg/cputime"
	"github.com/IPampurin/LineSorter/pkg/loader"
	"github.com/IPampurin/LineSorter/pkg/metrics"
	"github.com/IPampurin/LineSorter/pkg/output"
	"github.com/IPampurin/LineSorter/pkg/sorter"
	"github.com/IPampurin/LineSorter/pkg/tracing"
)

// Job - одно задание: загрузить, отсортировать и записать главный список
type Job struct {
	Name     string            // имя задания и выходного файла (без .txt)
	SortType comparer.SortType // порядок сортировки
	Parallel bool              // многопоточное чтение и сортировка
}

// DefaultJobs строит задания SingleXXX для однопоточного варианта и MultiXXX для многопоточного
func DefaultJobs(types []comparer.SortType, single, multi bool) []Job {

	var jobs []Job
	if single {
		for _, t := range types {
			jobs = append(jobs, Job{Name: "Single" + t.OutputSuffix(), SortType: t})
		}
	}
	if multi {
		for _, t := range types {
			jobs = append(jobs, Job{Name: "Multi" + t.OutputSuffix(), SortType: t, Parallel: true})
		}
	}

	return jobs
}

// Settings - общие для всех заданий параметры
type Settings struct {
	OutputDir string           // каталог выходных файлов
	Algorithm sorter.Algorithm // алгоритм сортировки
	ReadMode  loader.ReadMode  // способ чтения в многопоточных заданиях
	Sort      sorter.Options   // параметры параллельной сортировки
}

// Runner выполняет задания над одним и тем же списком входных файлов
type Runner struct {
	files    []string
	loader   *loader.Loader
	settings Settings
	metrics  *metrics.Metrics
	log      logger.Logger
	tracer   trace.Tracer
	runID    string
}

// NewRunner создаёт исполнителя заданий, files - результат перечисления входного каталога
func NewRunner(files []string, l *loader.Loader, settings Settings, m *metrics.Metrics, log logger.Logger) *Runner {

	return &Runner{
		files:    files,
		loader:   l,
		settings: settings,
		metrics:  m,
		log:      log,
		tracer:   tracing.Tracer(),
		runID:    uuid.NewString(),
	}
}

// RunID возвращает идентификатор запуска
func (r *Runner) RunID() string {
	return r.runID
}

// Run выполняет одно задание: время замеряется на загрузке и сортировке,
// запись выходного файла в замер не входит
func (r *Runner) Run(ctx context.Context, job Job) (output.Report, error) {

	report := output.Report{RunID: r.runID, Name: job.Name}

	// неизвестный порядок - ошибка до любой работы
	cmp, err := comparer.New(job.SortType)
	if err != nil {
		return report, fmt.Errorf("задание %s: %w", job.Name, err)
	}

	ctx, span := r.tracer.Start(ctx, "linesorter.job", trace.WithAttributes(
		attribute.String("job", job.Name),
		attribute.String("run_id", r.runID),
		attribute.String("sort_type", job.SortType.String()),
		attribute.Bool("parallel", job.Parallel),
	))
	defer span.End()

	mode := loader.Sequential
	if job.Parallel {
		mode = r.settings.ReadMode
	}

	clock := cputime.Start()

	// загрузка
	var master []string
	err = r.stage(ctx, job.Name, metrics.StageLoad, func(ctx context.Context) error {
		var stats loader.Stats
		var loadErr error
		master, stats, loadErr = r.loader.Load(ctx, mode, r.files)
		if loadErr != nil {
			return loadErr
		}
		report.Files, report.Failed, report.Lines = stats.Files, stats.Failed, stats.Lines
		r.metrics.AddLoad(job.Name, stats.Files, stats.Failed, stats.Lines)
		return nil
	})
	if err != nil {
		return report, r.fail(span, job, "ошибка загрузки", err)
	}

	// сортировка
	err = r.stage(ctx, job.Name, metrics.StageSort, func(ctx context.Context) error {
		return sorter.Sort(ctx, r.settings.Algorithm, job.Parallel, master, cmp, r.settings.Sort)
	})
	if err != nil {
		return report, r.fail(span, job, "ошибка сортировки", err)
	}

	report.Wall, report.CPU = clock.Stop()

	// запись
	report.Path = filepath.Join(r.settings.OutputDir, job.Name+".txt")
	err = r.stage(ctx, job.Name, metrics.StageWrite, func(context.Context) error {
		return output.WriteLines(report.Path, master)
	})
	if err != nil {
		return report, r.fail(span, job, "ошибка записи", err)
	}

	span.SetAttributes(attribute.Int("lines", report.Lines))
	r.log.Info("задание выполнено",
		"run_id", r.runID,
		"job", job.Name,
		"lines", report.Lines,
		"files", report.Files,
		"failed", report.Failed,
		"wall", report.Wall.String(),
		"cpu", report.CPU.String())

	return report, nil
}

// RunAll выполняет задания по очереди, печатает отчёт каждого в w
// и останавливается на первой ошибке или при отмене контекста
func (r *Runner) RunAll(ctx context.Context, jobs []Job, w io.Writer) ([]output.Report, error) {

	reports := make([]output.Report, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := r.Run(ctx, job)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)

		if err := report.Print(w); err != nil {
			return reports, fmt.Errorf("ошибка вывода отчёта: %w", err)
		}
	}

	return reports, nil
}

// stage выполняет этап задания в отдельном спане и замеряет его длительность
func (r *Runner) stage(ctx context.Context, job, name string, fn func(ctx context.Context) error) error {

	ctx, span := r.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	r.metrics.ObserveStage(job, name, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// fail помечает спан задания ошибкой, логирует её и оборачивает
func (r *Runner) fail(span trace.Span, job Job, msg string, err error) error {

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	r.log.Error(msg, "run_id", r.runID, "job", job.Name, "error", err)

	return fmt.Errorf("задание %s: %s: %w", job.Name, msg, err)
}
