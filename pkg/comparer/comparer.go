package comparer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSortType возвращается для неизвестного типа сортировки
var ErrInvalidSortType = errors.New("неизвестный тип сортировки")

// SortType - тип (порядок) сортировки
type SortType int

const (
	AlphabeticalAscending  SortType = iota // по алфавиту, по возрастанию
	AlphabeticalDescending                 // по алфавиту, по убыванию
	LastLetterAscending                    // по последнему символу, по возрастанию
)

// AllSortTypes - все поддерживаемые порядки в порядке запуска
var AllSortTypes = []SortType{AlphabeticalAscending, AlphabeticalDescending, LastLetterAscending}

// String возвращает текстовое имя порядка, принимаемое ParseSortType
func (t SortType) String() string {

	switch t {
	case AlphabeticalAscending:
		return "ascending"
	case AlphabeticalDescending:
		return "descending"
	case LastLetterAscending:
		return "lastletter"
	}

	return fmt.Sprintf("SortType(%d)", int(t))
}

// OutputSuffix возвращает суффикс имени выходного файла (SingleAscending, MultiLastLetter и т.д.)
func (t SortType) OutputSuffix() string {

	switch t {
	case AlphabeticalAscending:
		return "Ascending"
	case AlphabeticalDescending:
		return "Descending"
	case LastLetterAscending:
		return "LastLetter"
	}

	return "Unknown"
}

// ParseSortType разбирает имя порядка сортировки (регистр и пробелы не важны)
func ParseSortType(s string) (SortType, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return AlphabeticalAscending, nil
	case "descending", "desc":
		return AlphabeticalDescending, nil
	case "lastletter", "last-letter", "last":
		return LastLetterAscending, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidSortType, s)
}

// ParseSortTypes разбирает список порядков через запятую
func ParseSortTypes(s string) ([]SortType, error) {

	var types []SortType
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParseSortType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	if len(types) == 0 {
		return nil, fmt.Errorf("%w: пустой список", ErrInvalidSortType)
	}

	return types, nil
}

// Comparer отвечает на вопрос "должна ли первая строка стоять выше второй"
type Comparer interface {
	IsFirstAboveSecond(first, second string) bool
}

// New создаёт компаратор для указанного типа сортировки
func New(t SortType) (Comparer, error) {

	switch t {
	case AlphabeticalAscending:
		return alphabeticalAscending{}, nil
	case AlphabeticalDescending:
		return alphabeticalDescending{}, nil
	case LastLetterAscending:
		return lastLetterAscending{}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrInvalidSortType, int(t))
}

// alphabeticalAscending - побайтовое сравнение, префикс стоит выше более длинной строки
type alphabeticalAscending struct{}

func (alphabeticalAscending) IsFirstAboveSecond(first, second string) bool {

	n := min(len(first), len(second))
	for i := 0; i < n; i++ {
		if first[i] != second[i] {
			return first[i] < second[i]
		}
	}

	// общий префикс совпал: выше только более короткая строка
	return len(first) < len(second)
}

// alphabeticalDescending - зеркальный порядок к alphabeticalAscending
type alphabeticalDescending struct{}

func (alphabeticalDescending) IsFirstAboveSecond(first, second string) bool {
	return alphabeticalAscending{}.IsFirstAboveSecond(second, first)
}

// lastLetterAscending сравнивает последние байты строк,
// пустая строка никогда не стоит ниже непустой
type lastLetterAscending struct{}

func (lastLetterAscending) IsFirstAboveSecond(first, second string) bool {

	if second == "" {
		return false
	}
	if first == "" {
		return true
	}

	return first[len(first)-1] < second[len(second)-1]
}
