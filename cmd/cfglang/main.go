package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/rhino1998/configlang/pkg/configlang"
	"github.com/rhino1998/configlang/pkg/kinds"
	"github.com/rhino1998/configlang/pkg/parser"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newCommand(os.Stdout, os.Stderr)

	err := cmd.Run(ctx, os.Args)
	if errors.Is(err, errReported) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// errReported is returned after a diagnostic has already been written.
var errReported = errors.New("failed")

var (
	errColor  = color.New(color.FgRed, color.Bold)
	codeColor = color.New(color.FgYellow)
	fileColor = color.New(color.Bold)
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML file with interpreter limits and options",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "log interpreter activity to stderr",
		},
	}
}

func setup(c *cli.Command, stderr io.Writer) (*slog.Logger, configlang.Config, error) {
	level := slog.LevelWarn
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var config configlang.Config
	if path := c.String("config"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, config, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()

		config, err = configlang.ReadConfig(f)
		if err != nil {
			return nil, config, err
		}
	}

	err := config.Validate(logger)
	if err != nil {
		return nil, config, fmt.Errorf("invalid config: %w", err)
	}

	return logger, config, nil
}

func load(c *cli.Command, stderr io.Writer, path string) (*configlang.ConfigLang, error) {
	logger, config, err := setup(c, stderr)
	if err != nil {
		return nil, err
	}

	cfg, err := configlang.New(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	err = cfg.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func report(w io.Writer, err error) {
	code := configlang.CodeOf(err)

	var posErr parser.PositionError
	var fileErr configlang.FileError

	switch {
	case errors.As(err, &posErr):
		fileColor.Fprintf(w, "%s: ", posErr.Position)
		err = posErr.Err
	case errors.As(err, &fileErr):
		fileColor.Fprintf(w, "%s: ", fileErr.File)
		err = fileErr.Err
	}

	errColor.Fprint(w, "error")
	codeColor.Fprintf(w, " [%s %d]", code, int(code))
	fmt.Fprintf(w, ": %v\n", err)
}

func value(cfg *configlang.ConfigLang, name string) (string, error) {
	kind, err := cfg.Kind(name)
	if err != nil {
		return "", err
	}

	if kind == kinds.Int {
		n, err := cfg.Int(name)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	}

	return cfg.Text(name)
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "cfglang",
		Usage:     "Inspect and edit configlang files",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Load each file and report every failure",
				ArgsUsage: "FILE...",
				Flags:     flags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("must provide at least one file as argument")
					}

					logger, config, err := setup(c, stderr)
					if err != nil {
						return err
					}

					err = configlang.CheckFiles(logger, config, c.Args().Slice()...)
					if err == nil {
						return nil
					}

					var errs *configlang.ErrorSet
					if !errors.As(err, &errs) {
						return err
					}

					for _, e := range errs.Errs {
						report(stderr, e)
					}
					fmt.Fprintf(stderr, "%d of %d files failed\n", errs.Len(), c.Args().Len())

					return errReported
				},
			},
			{
				Name:      "get",
				Usage:     "Print the value of a variable",
				ArgsUsage: "FILE NAME",
				Flags:     flags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("must provide a file and a variable name")
					}

					cfg, err := load(c, stderr, c.Args().Get(0))
					if err != nil {
						report(stderr, err)
						return errReported
					}

					name := c.Args().Get(1)
					v, err := value(cfg, name)
					if err != nil {
						report(stderr, err)
						return errReported
					}

					fmt.Fprintln(stdout, v)

					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Assign an integer to an existing variable and save the file",
				ArgsUsage: "FILE NAME VALUE",
				Flags:     flags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 3 {
						return fmt.Errorf("must provide a file, a variable name and a value")
					}

					path := c.Args().Get(0)
					n, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid integer value: %w", err)
					}

					cfg, err := load(c, stderr, path)
					if err != nil {
						report(stderr, err)
						return errReported
					}

					err = cfg.SetInt(c.Args().Get(1), n)
					if err != nil {
						report(stderr, err)
						return errReported
					}

					return cfg.SaveFile(path)
				},
			},
			{
				Name:      "fmt",
				Usage:     "Print the canonical form of a file",
				ArgsUsage: "FILE",
				Flags: append(flags(), &cli.BoolFlag{
					Name:    "write",
					Aliases: []string{"w"},
					Usage:   "rewrite the file in place",
				}),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide one file as argument")
					}

					path := c.Args().First()
					cfg, err := load(c, stderr, path)
					if err != nil {
						report(stderr, err)
						return errReported
					}

					if c.Bool("write") {
						return cfg.SaveFile(path)
					}

					_, err = cfg.WriteTo(stdout)
					return err
				},
			},
			{
				Name:      "tokens",
				Usage:     "Dump the token stream of a file",
				ArgsUsage: "FILE",
				Flags:     flags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide one file as argument")
					}

					_, config, err := setup(c, stderr)
					if err != nil {
						return err
					}

					path := c.Args().First()
					src, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read file: %w", err)
					}

					lex := parser.NewLexer(path, string(src), config.Limits())
					for {
						tok := lex.Next()

						suffix := ""
						if tok.Truncated {
							suffix = " (truncated)"
						}
						fmt.Fprintf(stdout, "%d\t%s%s\n", tok.Line, tok, suffix)

						switch tok.Kind {
						case parser.EOF:
							return nil
						case parser.Illegal:
							report(stderr, tok.WrapError(tok.Err))
							return errReported
						}
					}
				},
			},
		},
	}
}
