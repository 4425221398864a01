package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"avscaffold/internal/app"
	"avscaffold/internal/config"
)

// Версию можно переопределить через -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := newApp(cfg, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fail(err)
	}
}

func newApp(cfg config.Config, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "avscaffold",
		Usage: "создаёт каркас проекта algorithm_visualizer (каталоги и пустые файлы)",
		Description: "Без аргументов создаёт ./algorithm_visualizer. Повторный запуск ничего не меняет:\n" +
			"существующие каталоги и файлы остаются как есть.",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Before: func(c *cli.Context) error {
			return configureLogging(c, cfg.LogLevel, stderr)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: cfg.OutDir,
				Usage: "каталог, куда создавать проект (родитель корня)",
			},
			&cli.StringFlag{
				Name:  "root",
				Value: cfg.Root,
				Usage: "имя корневого каталога (по умолчанию — из манифеста)",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "tree-файл со структурой вместо встроенной ('-' для stdin)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "только показать, что будет создано",
			},
			&cli.StringFlag{
				Name:  "dperm",
				Value: cfg.DirPerm,
				Usage: "права для новых каталогов (восьмерично, с учётом umask)",
			},
			&cli.StringFlag{
				Name:  "fperm",
				Value: cfg.FilePerm,
				Usage: "права для новых файлов (восьмерично, с учётом umask)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "подробный вывод",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "только ошибки",
			},
		},
		Action: generateAction(stdout),
		Commands: []*cli.Command{
			{
				Name:  "tree",
				Usage: "напечатать манифест в формате tree",
				Action: func(c *cli.Context) error {
					o, err := options(c, stdout)
					if err != nil {
						return err
					}
					return app.PrintTree(o)
				},
			},
			{
				Name:  "plan",
				Usage: "напечатать шаги, ничего не создавая",
				Action: func(c *cli.Context) error {
					o, err := options(c, stdout)
					if err != nil {
						return err
					}
					return app.PrintPlan(o)
				},
			},
			{
				Name:  "version",
				Usage: "показать версию",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(stdout, version)
					return nil
				},
			},
		},
	}
}

func generateAction(stdout io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() > 0 {
			return fmt.Errorf("неожиданные аргументы: %v", c.Args().Slice())
		}
		o, err := options(c, stdout)
		if err != nil {
			return err
		}
		_, err = app.Run(o)
		return err
	}
}

func options(c *cli.Context, stdout io.Writer) (app.Options, error) {
	dperm, err := config.ParsePerm(c.String("dperm"), config.DefaultDirPerm)
	if err != nil {
		return app.Options{}, fmt.Errorf("неверные права --dperm: %w", err)
	}
	fperm, err := config.ParsePerm(c.String("fperm"), config.DefaultFilePerm)
	if err != nil {
		return app.Options{}, fmt.Errorf("неверные права --fperm: %w", err)
	}
	return app.Options{
		ManifestPath: c.String("manifest"),
		OutDir:       c.String("out"),
		Root:         c.String("root"),
		DryRun:       c.Bool("dry-run"),
		DirPerm:      dperm,
		FilePerm:     fperm,
		Logger:       slog.Default(),
		Stdout:       stdout,
	}, nil
}

func configureLogging(c *cli.Context, base string, w io.Writer) error {
	level, err := config.ParseLevel(base)
	if err != nil {
		return err
	}
	switch {
	case c.Bool("verbose"):
		level = slog.LevelDebug
	case c.Bool("quiet"):
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	))
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "ошибка: %v\n", err)
	os.Exit(1)
}
