// Package config читает настройки запуска из окружения.
// Без переменных окружения значения по умолчанию дают поведение "как есть":
// встроенный манифест в текущем каталоге.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultDirPerm и DefaultFilePerm — 0777/0666, как у mkdir(2) и open(2) без явных прав:
// итог определяет umask процесса.
const (
	DefaultDirPerm  os.FileMode = 0o777
	DefaultFilePerm os.FileMode = 0o666
)

// Config — настройки, которые можно задать через окружение.
type Config struct {
	OutDir   string `env:"AVSCAFFOLD_OUT" envDefault:"."`
	Root     string `env:"AVSCAFFOLD_ROOT"`
	DirPerm  string `env:"AVSCAFFOLD_DIR_PERM" envDefault:"0777"`
	FilePerm string `env:"AVSCAFFOLD_FILE_PERM" envDefault:"0666"`
	LogLevel string `env:"AVSCAFFOLD_LOG_LEVEL" envDefault:"info"`
}

// Load читает окружение и проверяет значения.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate проверяет права и уровень логирования.
func (c Config) Validate() error {
	if _, err := ParsePerm(c.DirPerm, DefaultDirPerm); err != nil {
		return fmt.Errorf("AVSCAFFOLD_DIR_PERM: %w", err)
	}
	if _, err := ParsePerm(c.FilePerm, DefaultFilePerm); err != nil {
		return fmt.Errorf("AVSCAFFOLD_FILE_PERM: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("AVSCAFFOLD_LOG_LEVEL: %w", err)
	}
	return nil
}

// ParsePerm разбирает восьмеричные права: 0755, 755 и 0o755.
// Пустая строка даёт def.
func ParsePerm(s string, def os.FileMode) (os.FileMode, error) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return def, nil
	}
	ss = strings.TrimPrefix(strings.TrimPrefix(ss, "0o"), "0O")
	u, err := strconv.ParseUint(ss, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("неверные права %q: %w", s, err)
	}
	if u > 0o777 {
		return 0, fmt.Errorf("неверные права %q: допустимы только биты 0777", s)
	}
	return os.FileMode(u), nil
}

// ParseLevel переводит имя уровня в slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("неизвестный уровень логирования %q", s)
	}
	return l, nil
}
