// Package manifest описывает неизменяемую карту "каталог -> файлы",
// по которой строится каркас проекта.
package manifest

import (
	"errors"
	"fmt"
	"path"

	"avscaffold/internal/safety"
)

var (
	// ErrDuplicateDir — один и тот же каталог указан в манифесте дважды.
	ErrDuplicateDir = errors.New("каталог повторяется")
	// ErrDuplicateFile — файл повторяется внутри одного каталога.
	ErrDuplicateFile = errors.New("файл повторяется")
)

// Entry — один элемент манифеста: относительный каталог и файлы в нём.
type Entry struct {
	Dir   string   // относительный путь через "/", "" — сам корень
	Files []string // имена файлов (по одному сегменту), порядок сохраняется
}

// Manifest — упорядоченная карта каталогов. После New не меняется:
// наружу отдаются только копии.
type Manifest struct {
	root    string
	entries []Entry
	index   map[string]int
}

// New проверяет входные данные и собирает манифест.
// Порядок entries задаёт порядок обработки.
func New(root string, entries ...Entry) (Manifest, error) {
	if err := safety.ValidateName(root); err != nil {
		return Manifest{}, fmt.Errorf("корень манифеста: %w", err)
	}

	m := Manifest{
		root:    root,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := safety.ValidateRelDir(e.Dir); err != nil {
			return Manifest{}, err
		}
		if _, dup := m.index[e.Dir]; dup {
			return Manifest{}, fmt.Errorf("%w: %q", ErrDuplicateDir, e.Dir)
		}

		seen := make(map[string]struct{}, len(e.Files))
		files := make([]string, 0, len(e.Files))
		for _, f := range e.Files {
			if err := safety.ValidateName(f); err != nil {
				return Manifest{}, fmt.Errorf("каталог %q: %w", e.Dir, err)
			}
			if _, dup := seen[f]; dup {
				return Manifest{}, fmt.Errorf("%w: %q в каталоге %q", ErrDuplicateFile, f, e.Dir)
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}

		m.index[e.Dir] = len(m.entries)
		m.entries = append(m.entries, Entry{Dir: e.Dir, Files: files})
	}
	return m, nil
}

// Root — имя корневого каталога.
func (m Manifest) Root() string { return m.root }

// Len — число элементов.
func (m Manifest) Len() int { return len(m.entries) }

// Entries возвращает копию элементов в порядке обработки.
func (m Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = Entry{Dir: e.Dir, Files: append([]string(nil), e.Files...)}
	}
	return out
}

// Lookup возвращает файлы каталога dir.
func (m Manifest) Lookup(dir string) ([]string, bool) {
	i, ok := m.index[dir]
	if !ok {
		return nil, false
	}
	return append([]string(nil), m.entries[i].Files...), true
}

// Dirs — каталоги манифеста в порядке обработки.
func (m Manifest) Dirs() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Dir)
	}
	return out
}

// Files — все файлы относительно корня, через "/".
func (m Manifest) Files() []string {
	var out []string
	for _, e := range m.entries {
		for _, f := range e.Files {
			out = append(out, path.Join(e.Dir, f))
		}
	}
	return out
}

// WithRoot возвращает тот же манифест с другим именем корня.
func (m Manifest) WithRoot(root string) (Manifest, error) {
	return New(root, m.entries...)
}
