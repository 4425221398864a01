package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"avscaffold/internal/fsops"
	"avscaffold/internal/manifest"
	"avscaffold/internal/parser"
	"avscaffold/internal/plan"
)

// Options — все настройки запуска утилиты.
type Options struct {
	ManifestPath string // "" — встроенный манифест, "-" — stdin, иначе путь к tree-файлу
	OutDir       string // каталог, в котором создаётся корень
	Root         string // переопределение имени корня; "" — как в манифесте
	DryRun       bool
	DirPerm      os.FileMode
	FilePerm     os.FileMode
	Logger       *slog.Logger
	Stdin        io.Reader // для ManifestPath == "-"; nil — os.Stdin
	Stdout       io.Writer // nil — os.Stdout
}

// Run — главная функция приложения: берёт манифест, строит план, применяет.
func Run(o Options) (fsops.Result, error) {
	log := o.logger()

	// 1) Манифест: встроенный или из файла.
	m, err := LoadManifest(o)
	if err != nil {
		return fsops.Result{}, err
	}

	// 2) Раскладываем в шаги.
	p := plan.Build(m)

	// 3) Готовим корневой путь назначения.
	rootPath := filepath.Join(o.OutDir, m.Root())
	log.Debug("применяем каркас",
		"root", rootPath,
		"dirs", p.Count(plan.OpMkdir),
		"files", p.Count(plan.OpTouch),
		"dry_run", o.DryRun,
	)

	// 4) Применяем план к файловой системе.
	res, err := fsops.Apply(fsops.ApplyArgs{
		Plan:     p,
		DestRoot: rootPath,
		DryRun:   o.DryRun,
		DirPerm:  o.DirPerm,
		FilePerm: o.FilePerm,
		Logger:   log,
		Out:      o.stdout(),
	})
	if err != nil {
		return res, fmt.Errorf("создание каркаса: %w", err)
	}

	// 5) Готово.
	log.Debug("каркас готов",
		"root", rootPath,
		"dirs_created", res.DirsCreated,
		"dirs_existing", res.DirsExisting,
		"files_created", res.FilesCreated,
		"files_existing", res.FilesExisting,
	)
	return res, nil
}

// LoadManifest возвращает манифест согласно ManifestPath с учётом Root.
func LoadManifest(o Options) (manifest.Manifest, error) {
	var m manifest.Manifest
	switch o.ManifestPath {
	case "":
		m = manifest.AlgorithmVisualizer()
	case "-":
		in := o.Stdin
		if in == nil {
			in = os.Stdin
		}
		parsed, err := parser.ParseRoot(in, o.Root)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("ошибка парсинга структуры: %w", err)
		}
		m = parsed
	default:
		f, err := os.Open(o.ManifestPath)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("не удалось открыть входной файл %q: %w", o.ManifestPath, err)
		}
		defer f.Close()
		parsed, err := parser.ParseRoot(f, o.Root)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("ошибка парсинга структуры %q: %w", o.ManifestPath, err)
		}
		m = parsed
	}

	if o.Root != "" && o.Root != m.Root() {
		renamed, err := m.WithRoot(o.Root)
		if err != nil {
			return manifest.Manifest{}, fmt.Errorf("корень проекта некорректен: %w", err)
		}
		m = renamed
	}
	return m, nil
}

// PrintTree печатает манифест в формате tree.
func PrintTree(o Options) error {
	m, err := LoadManifest(o)
	if err != nil {
		return err
	}
	return parser.Format(o.stdout(), m)
}

// PrintPlan печатает шаги, не трогая диск.
func PrintPlan(o Options) error {
	m, err := LoadManifest(o)
	if err != nil {
		return err
	}
	p := plan.Build(m)
	_, err = io.WriteString(o.stdout(), p.String())
	return err
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}
