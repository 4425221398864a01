package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"avscaffold/internal/manifest"
)

// treeDir — каталог при печати: свои файлы и подкаталоги в порядке появления.
type treeDir struct {
	name     string
	files    []string
	children []*treeDir
	byName   map[string]*treeDir
}

func (d *treeDir) child(name string) *treeDir {
	if c, ok := d.byName[name]; ok {
		return c
	}
	c := &treeDir{name: name, byName: map[string]*treeDir{}}
	d.byName[name] = c
	d.children = append(d.children, c)
	return c
}

// Format печатает манифест в формате tree: корень с "/", затем ветки
// ├──/└── с отступом в 4 колонки и итоговая строка "N directories, M files".
// Внутри каталога сначала идут файлы, затем подкаталоги. Parse читает этот вывод обратно.
func Format(w io.Writer, m manifest.Manifest) error {
	root := &treeDir{name: m.Root(), byName: map[string]*treeDir{}}
	for _, e := range m.Entries() {
		d := root
		if e.Dir != "" {
			for _, seg := range strings.Split(e.Dir, "/") {
				d = d.child(seg)
			}
		}
		d.files = append(d.files, e.Files...)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s/\n", root.name)
	dirs, files := writeDir(bw, root, "")
	fmt.Fprintf(bw, "\n%d %s, %d %s\n", dirs, plural(dirs, "directory", "directories"), files, plural(files, "file", "files"))
	return bw.Flush()
}

func writeDir(w *bufio.Writer, d *treeDir, prefix string) (dirs, files int) {
	total := len(d.files) + len(d.children)
	i := 0
	for _, f := range d.files {
		i++
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch(i == total), f)
		files++
	}
	for _, c := range d.children {
		i++
		last := i == total
		fmt.Fprintf(w, "%s%s%s/\n", prefix, branch(last), c.name)
		dirs++

		next := prefix + "│   "
		if last {
			next = prefix + "    "
		}
		cd, cf := writeDir(w, c, next)
		dirs += cd
		files += cf
	}
	return dirs, files
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
