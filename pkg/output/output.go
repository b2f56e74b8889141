package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteLines перезаписывает файл path строками lines, по одной на строку файла
func WriteLines(path string, lines []string) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания выходного файла %s: %w", path, err)
	}

	if err := writeTo(f, lines); err != nil {
		_ = f.Close()
		return fmt.Errorf("ошибка записи выходного файла %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия выходного файла %s: %w", path, err)
	}

	return nil
}

// writeTo пишет строки через буфер, каждая строка завершается '\n'
func writeTo(w io.Writer, lines []string) error {

	bw := bufio.NewWriterSize(w, 256*1024)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Report - итоги одного задания
type Report struct {
	RunID  string        // идентификатор запуска
	Name   string        // имя задания (оно же имя выходного файла без .txt)
	Path   string        // путь выходного файла
	Files  int           // прочитано файлов
	Failed int           // не удалось открыть файлов
	Lines  int           // строк в главном списке
	Wall   time.Duration // астрономическое время загрузки и сортировки
	CPU    time.Duration // процессорное время загрузки и сортировки
}

// Print выводит строку отчёта в формате "<Name>\t- Clocks Taken: <время>"
func (r Report) Print(w io.Writer) error {

	_, err := fmt.Fprintf(w, "\n%s\t- Clocks Taken: %v (cpu %v, lines %d, files %d, failed %d)\n",
		r.Name, r.Wall.Round(time.Microsecond), r.CPU.Round(time.Microsecond), r.Lines, r.Files, r.Failed)

	return err
}
