package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"avscaffold/internal/manifest"
	"avscaffold/internal/safety"
)

// ErrUnnamedRoot — первая строка "." (вывод tree без аргументов), а имя корня не задано.
var ErrUnnamedRoot = errors.New("корень дерева без имени: задайте имя корня (--root)")

// node — строка дерева до сборки манифеста.
type node struct {
	name  string
	dir   bool
	depth int
	line  int
}

// Parse читает tree-подобный текст и возвращает манифест.
// Поддерживает псевдографику (├──/└──) и ASCII (|--/`--).
// Каталог определяется либо по суффиксу "/", либо по дочерним элементам (второй проход).
func Parse(r io.Reader) (manifest.Manifest, error) {
	return ParseRoot(r, "")
}

// ParseRoot — как Parse, но непустой root заменяет имя из первой строки.
// Так читается вывод tree, запущенного без аргументов (корень ".").
func ParseRoot(r io.Reader, root string) (manifest.Manifest, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)

	var nodes []node
	lineNum := 0
	seenRoot := false

	for sc.Scan() {
		lineNum++
		raw := strings.TrimRight(sc.Text(), "\r\n")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// Первая непустая строка — корень
		if !seenRoot {
			seenRoot = true
			if root != "" {
				continue
			}
			rootName := strings.TrimSuffix(line, "/")
			if rootName == "." {
				return manifest.Manifest{}, fmt.Errorf("строка %d: %w", lineNum, ErrUnnamedRoot)
			}
			if err := safety.ValidateName(rootName); err != nil {
				return manifest.Manifest{}, fmt.Errorf("строка %d: некорректное имя корня: %w", lineNum, err)
			}
			root = rootName
			continue
		}

		depth, name, ok := parseTreeLine(raw)
		if !ok {
			// Итоговая строка tree "N directories, M files"
			if isTreeSummary(line) {
				continue
			}
			return manifest.Manifest{}, fmt.Errorf("строка %d: не похоже на строку tree: %q", lineNum, raw)
		}

		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")

		if err := safety.ValidateName(name); err != nil {
			return manifest.Manifest{}, fmt.Errorf("строка %d: %w", lineNum, err)
		}

		nodes = append(nodes, node{name: name, dir: isDir, depth: depth, line: lineNum})
	}
	if err := sc.Err(); err != nil {
		return manifest.Manifest{}, err
	}
	if !seenRoot {
		return manifest.Manifest{}, fmt.Errorf("не найден корень проекта")
	}

	// Второй проход: если у узла следующая строка глубже — это каталог.
	for i := range nodes {
		if !nodes[i].dir && i+1 < len(nodes) && nodes[i+1].depth > nodes[i].depth {
			nodes[i].dir = true
		}
	}

	entries, err := group(nodes)
	if err != nil {
		return manifest.Manifest{}, err
	}
	return manifest.New(root, entries...)
}

// group раскладывает узлы по каталогам, держа стек текущего пути.
// Промежуточный каталог без своих файлов в манифест не попадает:
// его создаст MkdirAll дочернего.
func group(nodes []node) ([]manifest.Entry, error) {
	var (
		stack     []string
		order     []string
		files     = map[string][]string{}
		seen      = map[string]bool{}
		hasSubdir = map[string]bool{}
	)

	for _, n := range nodes {
		if n.depth > len(stack) {
			return nil, fmt.Errorf("строка %d: некорректная вложенность: узел %q с depth=%d, текущее дерево=%d",
				n.line, n.name, n.depth, len(stack))
		}
		stack = stack[:n.depth]
		parent := path.Join(stack...)

		if !n.dir {
			files[parent] = append(files[parent], n.name)
			continue
		}

		dir := path.Join(parent, n.name)
		if parent != "" {
			hasSubdir[parent] = true
		}
		if !seen[dir] {
			seen[dir] = true
			order = append(order, dir)
		}
		stack = append(stack, n.name)
	}

	// Корень идёт первым всегда, даже без своих файлов: иначе дерево
	// из одной строки ничего бы не создало.
	entries := []manifest.Entry{{Dir: "", Files: files[""]}}
	for _, dir := range order {
		if len(files[dir]) == 0 && hasSubdir[dir] {
			continue
		}
		entries = append(entries, manifest.Entry{Dir: dir, Files: files[dir]})
	}
	return entries, nil
}

// parseTreeLine пытается разобрать строку формата tree.
// Возвращает depth (количество уровней), имя узла и признак успеха.
func parseTreeLine(line string) (int, string, bool) {
	// Ищем любой из допустимых маркеров ветвления.
	markers := []string{"├── ", "└── ", "|-- ", "`-- ", "+-- "}
	idx := -1
	used := ""
	for _, m := range markers {
		if i := strings.Index(line, m); i != -1 && (idx == -1 || i < idx) {
			idx = i
			used = m
		}
	}
	if idx == -1 {
		// Пробуем без пробела после маркера (на всякий случай)
		markers = []string{"├──", "└──", "|--", "`--", "+--"}
		for _, m := range markers {
			if i := strings.Index(line, m); i != -1 && (idx == -1 || i < idx) {
				idx = i
				used = m
			}
		}
	}
	if idx == -1 {
		return 0, "", false
	}

	prefix := line[:idx]
	depth := countDepth(prefix)
	name := strings.TrimSpace(line[idx+len(used):])
	return depth, name, true
}

// countDepth считает глубину по префиксу.
// Заменяем все псевдографические символы и '|' на пробелы и считаем группы по 4 пробела.
func countDepth(prefix string) int {
	s := prefix
	repl := []string{"│", "└", "├", "─", "|"}
	for _, r := range repl {
		s = strings.ReplaceAll(s, r, " ")
	}
	spaces := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			spaces++
		}
	}
	return spaces / 4
}

// Очень простая эвристика: игнорируем строку-резюме tree.
func isTreeSummary(line string) bool {
	s := strings.TrimSpace(strings.ToLower(line))
	return (strings.Contains(s, "directories") || strings.Contains(s, "directory")) &&
		(strings.Contains(s, "files") || strings.Contains(s, "file"))
}
