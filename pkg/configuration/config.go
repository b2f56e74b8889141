package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/pflag"
	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
)

// переменная окружения с путём к .env файлу
const envFileVar = "LINESORTER_ENV_FILE"

// ConfFiles — каталоги входных и выходных файлов
type ConfFiles struct {
	InputDir  string `env:"INPUT_DIR"  env-default:"../InputFiles" validate:"required"`
	OutputDir string `env:"OUTPUT_DIR" env-default:"."             validate:"required"`
}

// ConfSort — параметры сортировки
type ConfSort struct {
	Algorithm string `env:"SORT_ALGORITHM"        env-default:"merge"                        validate:"oneof=bubble threaded-bubble merge"`
	Threshold int    `env:"SORT_THREAD_THRESHOLD" env-default:"1000"                         validate:"min=1"`
	MaxDepth  int    `env:"SORT_MAX_THREAD_DEPTH" env-default:"3"                            validate:"min=1,max=16"`
	Workers   int    `env:"SORT_WORKERS"          env-default:"0"                            validate:"min=0"`
	Orders    string `env:"SORT_ORDERS"           env-default:"ascending,descending,lastletter" validate:"required"`
}

// ConfRead — параметры чтения входных файлов и повторных попыток открытия
type ConfRead struct {
	Mode       string        `env:"READ_MODE"          env-default:"futures" validate:"oneof=sequential threaded futures"`
	RetryCount int           `env:"READ_RETRY_COUNT"   env-default:"3"       validate:"min=1"`
	RetryDelay time.Duration `env:"READ_RETRY_DELAY"   env-default:"50ms"    validate:"min=0"`
	Backoff    int           `env:"READ_RETRY_BACKOFF" env-default:"2"       validate:"min=1"`
}

// ConfRun — какие варианты заданий запускать
type ConfRun struct {
	Single   bool `env:"RUN_SINGLE"   env-default:"true"`
	Multi    bool `env:"RUN_MULTI"    env-default:"true"`
	Generate int  `env:"RUN_GENERATE" env-default:"0" validate:"min=0"` // сколько входных файлов сгенерировать перед запуском
}

// ConfObservability — логи, метрики и трейсы
type ConfObservability struct {
	AppEnv       string `env:"APP_ENV"       env-default:""`
	MetricsFile  string `env:"METRICS_FILE"  env-default:""`
	OtelEndpoint string `env:"OTEL_ENDPOINT" env-default:""`
}

// Config — корневая структура конфигурации
type Config struct {
	Files         ConfFiles
	Sort          ConfSort
	Read          ConfRead
	Run           ConfRun
	Observability ConfObservability
}

// ReadConfig загружает .env файл (путь из LINESORTER_ENV_FILE, по умолчанию ./.env),
// а если его нет - только переменные окружения, затем применяет флаги командной строки
func ReadConfig(args []string) (*Config, error) {

	var config Config

	path := os.Getenv(envFileVar)
	if path == "" {
		path = "./.env"
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		// загружаем конфигурацию из файла .env напрямую в структуру
		if err := cleanenvport.LoadPath(path, &config); err != nil {
			return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// файла нет - берём переменные окружения и значения по умолчанию
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
		}
	default:
		return nil, fmt.Errorf("ошибка доступа к %s: %w", path, err)
	}

	if err := config.applyFlags(args); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("невалидная конфигурация: %w", err)
	}

	return &config, nil
}

// applyFlags переопределяет значения флагами командной строки (только явно заданными)
func (c *Config) applyFlags(args []string) error {

	flags := pflag.NewFlagSet("linesorter", pflag.ContinueOnError)
	flags.StringVarP(&c.Files.InputDir, "input", "i", c.Files.InputDir, "каталог входных файлов")
	flags.StringVarP(&c.Files.OutputDir, "output", "o", c.Files.OutputDir, "каталог выходных файлов")
	flags.StringVarP(&c.Sort.Algorithm, "algorithm", "a", c.Sort.Algorithm, "алгоритм: bubble, threaded-bubble, merge")
	flags.StringVar(&c.Sort.Orders, "orders", c.Sort.Orders, "порядки через запятую: ascending, descending, lastletter")
	flags.IntVar(&c.Sort.Threshold, "threshold", c.Sort.Threshold, "размер, ниже которого сортировка не распараллеливается")
	flags.IntVar(&c.Sort.MaxDepth, "max-depth", c.Sort.MaxDepth, "глубина рекурсии, после которой горутины не создаются")
	flags.IntVar(&c.Sort.Workers, "workers", c.Sort.Workers, "воркеров для пузырька по партициям (0 - GOMAXPROCS)")
	flags.StringVarP(&c.Read.Mode, "read-mode", "r", c.Read.Mode, "чтение файлов в многопоточных заданиях: sequential, threaded, futures")
	flags.BoolVar(&c.Run.Single, "single", c.Run.Single, "запускать однопоточные задания")
	flags.BoolVar(&c.Run.Multi, "multi", c.Run.Multi, "запускать многопоточные задания")
	flags.IntVar(&c.Run.Generate, "generate", c.Run.Generate, "сгенерировать N входных файлов перед запуском")
	flags.StringVar(&c.Observability.MetricsFile, "metrics-file", c.Observability.MetricsFile, "файл для выгрузки метрик")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("ошибка разбора флагов: %w", err)
	}

	if flags.NArg() > 0 {
		return fmt.Errorf("неожиданные аргументы: %v", flags.Args())
	}

	return nil
}
