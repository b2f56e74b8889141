package generator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Lines возвращает n случайных строк из слов, примерно каждая двадцатая строка пустая,
// одинаковый seed даёт одинаковый набор (seed = 0 - случайный набор)
func Lines(n int, seed uint64) []string {

	faker := gofakeit.New(seed)

	lines := make([]string, 0, n)
	for range n {
		// пустые строки проверяют крайние случаи компараторов
		if faker.Number(0, 19) == 0 {
			lines = append(lines, "")
			continue
		}

		words := make([]string, faker.Number(1, 5))
		for i := range words {
			words[i] = faker.Word()
		}
		lines = append(lines, strings.Join(words, " "))
	}

	return lines
}

// Generate создаёт в dir files входных файлов по linesPerFile строк в каждом,
// возвращает пути созданных файлов
func Generate(dir string, files, linesPerFile int, seed uint64) ([]string, error) {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога %s: %w", dir, err)
	}

	paths := make([]string, 0, files)
	for i := range files {
		// у каждого файла свой seed, иначе все файлы совпадут
		fileSeed := seed
		if seed != 0 {
			fileSeed = seed + uint64(i)
		}

		path := filepath.Join(dir, fmt.Sprintf("input_%03d.txt", i+1))
		if err := writeFile(path, Lines(linesPerFile, fileSeed)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// writeFile записывает строки в файл, каждая строка завершается переводом строки
func writeFile(path string, lines []string) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("ошибка записи в файл %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("ошибка записи в файл %s: %w", path, err)
	}

	return f.Close()
}
