package safety

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName — имя или относительный путь не прошли проверку.
	ErrInvalidName = errors.New("некорректное имя")
	// ErrEscapesRoot — собранный путь выходит за пределы корня.
	ErrEscapesRoot = errors.New("выход за пределы корня")
)

// ValidateName проверяет, что имя — один путь-сегмент без разделителей,
// не ".", не ".." и не абсолютный путь.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: пустое имя", ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: имя не должно содержать разделителей пути: %q", ErrInvalidName, name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: NUL в имени: %q", ErrInvalidName, name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("%w: абсолютные пути запрещены: %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateRelDir проверяет относительный каталог манифеста: "" (сам корень)
// либо сегменты через "/", каждый проходит ValidateName.
// Путь должен быть уже чистым: "a//b", "a/./b" и "a/" отвергаются.
func ValidateRelDir(dir string) error {
	if dir == "" {
		return nil
	}
	if path.Clean(dir) != dir {
		return fmt.Errorf("%w: путь не нормализован: %q", ErrInvalidName, dir)
	}
	for _, seg := range strings.Split(dir, "/") {
		if err := ValidateName(seg); err != nil {
			return fmt.Errorf("каталог %q: %w", dir, err)
		}
	}
	return nil
}

// SafeJoin объединяет root и parts и убеждается, что результат остаётся внутри root.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)

	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return "", err
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, p)
	}
	return cleanP, nil
}
