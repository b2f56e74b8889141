package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownReadMode возвращается для неизвестного способа чтения
var ErrUnknownReadMode = errors.New("неизвестный способ чтения файлов")

// максимальная длина одной строки входного файла
const maxLineSize = 64 * 1024 * 1024

// ReadMode - способ чтения набора файлов
type ReadMode string

const (
	Sequential ReadMode = "sequential" // файлы читаются по очереди
	Threaded   ReadMode = "threaded"   // по горутине на файл, результаты в слотах
	Futures    ReadMode = "futures"    // по "future"-каналу на файл, ожидание в порядке файлов
)

// ParseReadMode разбирает имя способа чтения
func ParseReadMode(s string) (ReadMode, error) {

	switch mode := ReadMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case Sequential, Threaded, Futures:
		return mode, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownReadMode, s)
}

// Stats - итоги чтения набора файлов
type Stats struct {
	Files  int // сколько файлов прочитано успешно
	Failed int // сколько файлов открыть не удалось
	Lines  int // сколько строк в главном списке
}

// Loader читает входные файлы, повторяя попытки открытия по стратегии
type Loader struct {
	strategy retry.Strategy
	log      logger.Logger
}

// New создаёт загрузчик
func New(strategy retry.Strategy, log logger.Logger) *Loader {
	return &Loader{strategy: strategy, log: log}
}

// ListFiles возвращает пути всех элементов каталога dir, кроме каталогов
// (ссылки на каталоги тоже пропускаются)
func ListFiles(dir string) ([]string, error) {

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				continue
			}
		}
		files = append(files, path)
	}

	return files, nil
}

// ReadLines считывает все строки из r, завершающий '\r' отбрасывается
func ReadLines(r io.Reader) ([]string, error) {

	scanner := bufio.NewScanner(r)
	// увеличиваем буфер для длинных строк
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("ошибка считывания: %w", err)
	}

	return lines, nil
}

// readFile открывает файл с повторами и считывает его строки
func (l *Loader) readFile(ctx context.Context, path string) ([]string, error) {

	var f *os.File
	err := retry.DoContext(ctx, l.strategy, func() error {
		var openErr error
		f, openErr = os.Open(path)
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл %s: %w", path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// ReadFile возвращает строки файла; если файл прочитать не удалось,
// ошибка логируется и возвращается пустой список, ok = false
func (l *Loader) ReadFile(ctx context.Context, path string) (lines []string, ok bool) {

	lines, err := l.readFile(ctx, path)
	if err != nil {
		l.log.Error("ошибка чтения входного файла", "file", path, "error", err)
		return []string{}, false
	}

	return lines, true
}

// fileResult - результат чтения одного файла
type fileResult struct {
	lines []string
	ok    bool
}

// Load читает все файлы выбранным способом и склеивает строки в главный список:
// сначала в порядке файлов, затем в порядке строк внутри файла
func (l *Loader) Load(ctx context.Context, mode ReadMode, files []string) ([]string, Stats, error) {

	var (
		results []fileResult
		err     error
	)

	switch mode {
	case Sequential:
		results, err = l.loadSequential(ctx, files)
	case Threaded:
		results, err = l.loadThreaded(ctx, files)
	case Futures:
		results, err = l.loadFutures(ctx, files)
	default:
		return nil, Stats{}, fmt.Errorf("%w: %q", ErrUnknownReadMode, string(mode))
	}
	if err != nil {
		return nil, Stats{}, err
	}

	master, stats := concat(results)

	return master, stats, nil
}

// concat склеивает результаты в главный список и подсчитывает итоги
func concat(results []fileResult) ([]string, Stats) {

	var stats Stats
	total := 0
	for _, r := range results {
		total += len(r.lines)
	}

	master := make([]string, 0, total)
	for _, r := range results {
		if r.ok {
			stats.Files++
		} else {
			stats.Failed++
		}
		master = append(master, r.lines...)
	}
	stats.Lines = len(master)

	return master, stats
}

// loadSequential читает файлы по очереди
func (l *Loader) loadSequential(ctx context.Context, files []string) ([]fileResult, error) {

	results := make([]fileResult, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i].lines, results[i].ok = l.ReadFile(ctx, path)
	}

	return results, nil
}

// loadThreaded запускает по горутине на файл, каждая пишет в свой слот
func (l *Loader) loadThreaded(ctx context.Context, files []string) ([]fileResult, error) {

	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].lines, results[i].ok = l.ReadFile(gctx, path)
			return nil
		})
	}

	// ждём все горутины до склейки
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// отмена могла прийти и после того, как все горутины отработали
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// loadFutures запускает чтение каждого файла и сразу возвращает "future" - канал
// с единственным результатом, затем забирает результаты в порядке файлов
func (l *Loader) loadFutures(ctx context.Context, files []string) ([]fileResult, error) {

	futures := make([]<-chan fileResult, len(files))
	for i, path := range files {
		futures[i] = l.readAsync(ctx, path)
	}

	results := make([]fileResult, len(files))
	for i, future := range futures {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case results[i] = <-future:
		}
	}

	return results, nil
}

// readAsync читает файл в отдельной горутине, канал буферизован,
// чтобы горутина не зависла, если результат уже никому не нужен
func (l *Loader) readAsync(ctx context.Context, path string) <-chan fileResult {

	future := make(chan fileResult, 1)
	go func() {
		lines, ok := l.ReadFile(ctx, path)
		future <- fileResult{lines: lines, ok: ok}
	}()

	return future
}
