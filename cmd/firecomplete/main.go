// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Command firecomplete generates bash and fish completion scripts from command manifests.
//
//	firecomplete -m mytool.yaml -s fish > ~/.config/fish/completions/mytool.fish
//	firecomplete -m 'tools/**/*.toml' --install
//	firecomplete -m mytool.yaml --line "mytool db ba"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/napalu/firecomplete/completion"
	"github.com/napalu/firecomplete/internal/logger"
	"github.com/napalu/firecomplete/internal/util"
	"github.com/napalu/goopt"
)

type Config struct {
	Manifest []string `goopt:"name:manifest;short:m;desc:Manifest files or globs (.yaml, .yml, .toml)"`
	Shell    string   `goopt:"name:shell;short:s;desc:Target shell: bash or fish (default: manifest shell or bash)"`
	Name     string   `goopt:"name:name;short:n;desc:Override the command name of a single manifest"`
	Options  []string `goopt:"name:option;short:o;desc:Option accepted by every command"`
	Depth    int      `goopt:"name:depth;short:d;desc:Member levels traversed below the root (default 3)"`
	Output   string   `goopt:"name:output;short:f;desc:Write the script of a single manifest to this file"`
	Install  bool     `goopt:"name:install;short:i;desc:Install scripts into the user's completion directory"`
	Line     string   `goopt:"name:line;short:l;desc:Print completions for a partial command line"`
	Watch    bool     `goopt:"name:watch;short:w;desc:Regenerate written or installed scripts when manifests change"`
	Verbose  bool     `goopt:"name:verbose;short:v;desc:Show detailed progress"`
	Help     bool     `goopt:"name:help;short:h;desc:Show help"`
}

var errUsage = errors.New("invalid usage")

// depthNone records an explicit --depth of zero or less, since a zero Depth means unset
const depthNone = -1

func main() {
	cfg := &Config{}
	parser, err := goopt.NewParserFromStruct(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !parser.Parse(os.Args) {
		for _, err := range parser.GetErrors() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if cfg.Help {
		parser.PrintUsageWithGroups(os.Stdout)
		os.Exit(0)
	}

	if parser.HasFlag("depth") && cfg.Depth <= 0 {
		cfg.Depth = depthNone
	}

	logger.Setup(os.Stderr, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			parser.PrintUsageWithGroups(os.Stderr)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, stdout io.Writer) error {
	if err := validate(cfg); err != nil {
		return err
	}

	files, err := expandManifests(cfg.Manifest)
	if err != nil {
		return err
	}
	if len(files) > 1 && (cfg.Name != "" || cfg.Output != "" || cfg.Line != "") {
		return fmt.Errorf("%w: --name, --output and --line need exactly one manifest, got %d", errUsage, len(files))
	}

	if cfg.Line != "" {
		return printLine(cfg, files[0], stdout)
	}

	jobs, err := buildJobs(ctx, cfg, files)
	if err != nil {
		return err
	}

	emit := emitter(cfg, stdout)
	for _, j := range jobs {
		if err := emit(j); err != nil {
			return err
		}
	}

	if cfg.Watch {
		return watch(ctx, cfg, files, emit)
	}

	return nil
}

func validate(cfg *Config) error {
	switch {
	case len(cfg.Manifest) == 0:
		return fmt.Errorf("%w: at least one --manifest is required", errUsage)
	case cfg.Watch && cfg.Output == "" && !cfg.Install:
		return fmt.Errorf("%w: --watch needs --output or --install", errUsage)
	case cfg.Output != "" && cfg.Install:
		return fmt.Errorf("%w: --output and --install are mutually exclusive", errUsage)
	}

	return nil
}

func printLine(cfg *Config, file string, stdout io.Writer) error {
	j, err := buildJob(cfg, file)
	if err != nil {
		return err
	}
	completions, err := completion.CompleteLine(j.root, cfg.Line, false)
	if err != nil {
		return err
	}
	for _, c := range completions {
		fmt.Fprintln(stdout, c)
	}

	return nil
}

// emitter returns the sink for generated scripts: a file, the user's completion directory or stdout
func emitter(cfg *Config, stdout io.Writer) func(*job) error {
	switch {
	case cfg.Output != "":
		return func(j *job) error {
			if err := os.WriteFile(cfg.Output, []byte(j.script), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
			}
			slog.Info("wrote completion script", "path", cfg.Output, "shell", j.shell)
			return nil
		}
	case cfg.Install:
		return install
	default:
		hinted := false
		return func(j *job) error {
			if !hinted && util.IsTerminal(os.Stdout) {
				hinted = true
				fmt.Fprintf(os.Stderr, "# redirect to a file and source it, or use --install\n")
			}
			_, err := io.WriteString(stdout, j.script)
			return err
		}
	}
}

func install(j *job) error {
	manager, err := completion.NewCompletionManager(j.shell, j.name)
	if err != nil {
		return err
	}
	manager.Accept(j.index)
	if err := manager.SaveCompletion(); err != nil {
		return fmt.Errorf("installing completion for %s: %w", j.name, err)
	}
	slog.Info("installed completion script",
		"path", manager.CompletionFilePath(),
		"shell", j.shell,
		"unchanged", manager.Unchanged())

	return nil
}
