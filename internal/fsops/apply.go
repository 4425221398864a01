package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"syscall"

	"avscaffold/internal/plan"
	"avscaffold/internal/safety"
)

// ApplyArgs — параметры применения плана к файловой системе.
type ApplyArgs struct {
	Plan     plan.Plan
	DestRoot string // путь к корню каркаса (уже с именем корня)
	DryRun   bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Logger   *slog.Logger // nil — slog.Default()
	Out      io.Writer    // куда печатать шаги в dry-run; nil — io.Discard
}

// Result — что было сделано. При ошибке отражает шаги до неё.
type Result struct {
	DirsCreated   int
	DirsExisting  int
	FilesCreated  int
	FilesExisting int
}

// Apply выполняет шаги плана по порядку. Первая ошибка прерывает работу,
// всё созданное до неё остаётся на месте.
func Apply(a ApplyArgs) (Result, error) {
	var res Result
	log := a.Logger
	if log == nil {
		log = slog.Default()
	}
	w := a.Out
	if w == nil {
		w = io.Discard
	}

	for _, st := range a.Plan.Steps {
		target, err := safety.SafeJoin(a.DestRoot, st.Rel)
		if err != nil {
			return res, err
		}

		if a.DryRun {
			fmt.Fprintf(w, "%s %s\n", dryVerb(st.Op), target)
			log.Debug("пробный прогон", "op", st.Op.String(), "path", target)
			continue
		}

		switch st.Op {
		case plan.OpMkdir:
			created, err := ensureDir(target, a.DirPerm)
			if err != nil {
				return res, err
			}
			if created {
				res.DirsCreated++
				log.Debug("каталог создан", "path", target)
			} else {
				res.DirsExisting++
				log.Debug("каталог уже есть", "path", target)
			}

		case plan.OpTouch:
			created, err := touch(target, a.FilePerm)
			if err != nil {
				return res, err
			}
			if created {
				res.FilesCreated++
				log.Debug("файл создан", "path", target)
			} else {
				res.FilesExisting++
				log.Debug("файл уже есть", "path", target)
			}

		default:
			return res, fmt.Errorf("неизвестный шаг %d для %s", st.Op, target)
		}
	}
	return res, nil
}

// ensureDir создаёт каталог вместе с предками. Существующий каталог — не ошибка,
// файл на его месте (или на месте предка) — ошибка от ОС. Ошибки *fs.PathError
// уже содержат операцию и путь и возвращаются как есть.
func ensureDir(path string, perm os.FileMode) (bool, error) {
	existed, err := exists(path)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return false, err
	}
	return !existed, nil
}

// touch создаёт пустой файл, если его нет. Существующий файл открывается
// на дозапись и сразу закрывается: содержимое не меняется.
func touch(path string, perm os.FileMode) (bool, error) {
	existed, err := exists(path)
	if err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, perm)
	if err != nil {
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	return !existed, nil
}

// exists сообщает, есть ли что-то по пути. ENOTDIR у предка считаем
// отсутствием: саму ошибку вернёт последующий mkdir/open.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, err
	}
}

func dryVerb(op plan.Op) string {
	if op == plan.OpMkdir {
		return "mkdir -p"
	}
	return op.String()
}
