package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"

	"github.com/IPampurin/LineSorter/pkg/comparer"
	"github.com/IPampurin/LineSorter/pkg/configuration"
	"github.com/IPampurin/LineSorter/pkg/generator"
	"github.com/IPampurin/LineSorter/pkg/loader"
	"github.com/IPampurin/LineSorter/pkg/metrics"
	"github.com/IPampurin/LineSorter/pkg/pipeline"
	"github.com/IPampurin/LineSorter/pkg/sorter"
	"github.com/IPampurin/LineSorter/pkg/tracing"
	"github.com/IPampurin/LineSorter/pkg/workerpool"
)

// строк в каждом сгенерированном входном файле
const generatedLinesPerFile = 1000

func main() {

	// cоздаём контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// запускаем горутину обработки сигналов
	go signalHandler(ctx, cancel)

	// считываем .env файл, окружение и флаги
	cfg, err := configuration.ReadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// настраиваем логгер
	appLogger, err := logger.InitLogger(
		logger.ZapEngine,
		"linesorter",
		cfg.Observability.AppEnv,
		logger.WithLevel(logger.InfoLevel),
	)
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}

	// настраиваем трейсинг
	shutdownTracing, err := tracing.Init(ctx, cfg.Observability.OtelEndpoint)
	if err != nil {
		appLogger.Warn("трейсинг не работает", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	err = run(ctx, cfg, appLogger)

	// выгружаем оставшиеся спаны даже после отмены основного контекста
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if shutdownErr := shutdownTracing(shutdownCtx); shutdownErr != nil {
		appLogger.Warn("ошибка остановки трейсинга", "error", shutdownErr)
	}

	if err != nil {
		appLogger.Error("Ошибка выполнения", "error", err)
		cancel()
		os.Exit(1)
	}

	fmt.Println("\nFinished...")
	appLogger.Info("Приложение корректно завершено")
}

// run перечисляет входные файлы и выполняет задания
func run(ctx context.Context, cfg *configuration.Config, appLogger logger.Logger) error {

	// при необходимости создаём входные файлы
	if cfg.Run.Generate > 0 {
		paths, err := generator.Generate(cfg.Files.InputDir, cfg.Run.Generate, generatedLinesPerFile, 0)
		if err != nil {
			return err
		}
		appLogger.Info("сгенерированы входные файлы", "dir", cfg.Files.InputDir, "count", len(paths))
	}

	types, err := comparer.ParseSortTypes(cfg.Sort.Orders)
	if err != nil {
		return err
	}
	alg, err := sorter.ParseAlgorithm(cfg.Sort.Algorithm)
	if err != nil {
		return err
	}
	mode, err := loader.ParseReadMode(cfg.Read.Mode)
	if err != nil {
		return err
	}

	// перечисляем входные файлы один раз для всех заданий
	files, err := loader.ListFiles(cfg.Files.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		appLogger.Warn("во входном каталоге нет файлов", "dir", cfg.Files.InputDir)
	}

	if err := os.MkdirAll(cfg.Files.OutputDir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога %s: %w", cfg.Files.OutputDir, err)
	}

	// пул живёт весь запуск и переиспользуется заданиями
	pool := workerpool.New(cfg.Sort.Workers)
	defer pool.Close()

	m := metrics.New()
	if cfg.Observability.MetricsFile != "" {
		defer func() {
			if err := m.WriteFile(cfg.Observability.MetricsFile); err != nil {
				appLogger.Warn("метрики не сохранены", "error", err)
			}
		}()
	}

	strategy := retry.Strategy{
		Attempts: cfg.Read.RetryCount,
		Delay:    cfg.Read.RetryDelay,
		Backoff:  float64(cfg.Read.Backoff),
	}

	settings := pipeline.Settings{
		OutputDir: cfg.Files.OutputDir,
		Algorithm: alg,
		ReadMode:  mode,
		Sort: sorter.Options{
			Threshold: cfg.Sort.Threshold,
			MaxDepth:  cfg.Sort.MaxDepth,
			Pool:      pool,
		},
	}

	runner := pipeline.NewRunner(files, loader.New(strategy, appLogger), settings, m, appLogger)
	appLogger.Info("запуск заданий",
		"run_id", runner.RunID(),
		"files", len(files),
		"algorithm", string(alg),
		"read_mode", string(mode))

	jobs := pipeline.DefaultJobs(types, cfg.Run.Single, cfg.Run.Multi)
	_, err = runner.RunAll(ctx, jobs, os.Stdout)

	return err
}

// signalHandler обрабатывет сигналы отмены
func signalHandler(ctx context.Context, cancel context.CancelFunc) {

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		return
	case <-sigChan:
		cancel()
		return
	}
}
