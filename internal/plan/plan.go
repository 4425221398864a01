package plan

import (
	"path"
	"strings"

	"avscaffold/internal/manifest"
)

// Op — вид шага.
type Op int

const (
	OpMkdir Op = iota // создать каталог вместе с предками
	OpTouch           // создать пустой файл, если его нет
)

func (o Op) String() string {
	switch o {
	case OpMkdir:
		return "mkdir"
	case OpTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Step — один шаг плана. Rel — путь относительно корня через "/",
// "" означает сам корень.
type Step struct {
	Op  Op
	Rel string
}

// Plan — корневое имя и шаги в порядке выполнения.
type Plan struct {
	Root  string
	Steps []Step
}

// Build раскладывает манифест в плоский список шагов:
// для каждого элемента mkdir каталога, затем touch каждого файла.
func Build(m manifest.Manifest) Plan {
	p := Plan{Root: m.Root()}
	for _, e := range m.Entries() {
		p.Steps = append(p.Steps, Step{Op: OpMkdir, Rel: e.Dir})
		for _, f := range e.Files {
			p.Steps = append(p.Steps, Step{Op: OpTouch, Rel: path.Join(e.Dir, f)})
		}
	}
	return p
}

// Count возвращает число шагов заданного вида.
func (p Plan) Count(op Op) int {
	n := 0
	for _, s := range p.Steps {
		if s.Op == op {
			n++
		}
	}
	return n
}

// String печатает план в виде shell-подобных строк относительно корня.
func (p Plan) String() string {
	var b strings.Builder
	for _, s := range p.Steps {
		b.WriteString(s.Op.String())
		if s.Op == OpMkdir {
			b.WriteString(" -p")
		}
		b.WriteByte(' ')
		b.WriteString(path.Join(p.Root, s.Rel))
		b.WriteByte('\n')
	}
	return b.String()
}
