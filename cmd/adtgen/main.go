// Command adtgen generates exhaustively matchable sum types from adt.yaml.
//
//	//go:generate go run github.com/ib-77/adt/cmd/adtgen -config adt.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ib-77/adt/internal/gen"
	"github.com/ib-77/adt/pkg/adt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("adtgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "adt.yaml", "path to the schema config")
	out := fs.String("out", "", "output file (defaults to the config's output, next to the config)")
	verbose := fs.Bool("v", false, "log progress")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := generate(logger, *configPath, *out); err != nil {
		report(stderr, err)
		return 1
	}
	return 0
}

func generate(logger *slog.Logger, configPath, out string) error {
	cfg, err := gen.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", configPath, "package", cfg.Package, "types", len(cfg.Types))

	if out == "" {
		out = filepath.Join(filepath.Dir(configPath), cfg.Output)
	}

	out, err = filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", out, err)
	}

	src, err := gen.NewGenerator().Generate(cfg, out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Debug("generated", "out", out, "bytes", len(src))
	return nil
}

func report(w io.Writer, err error) {
	prefix := "adtgen: "
	if colored(w) {
		prefix = "\x1b[31madtgen:\x1b[0m "
	}
	for _, e := range adt.Errors(err) {
		fmt.Fprintln(w, prefix+e.Error())
	}
}

func colored(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
