package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/napalu/firecomplete/completion"
	"github.com/napalu/firecomplete/surface"
	"golang.org/x/sync/errgroup"
)

type job struct {
	source string
	name   string
	shell  string
	root   *surface.Node
	index  *completion.Index
	script string
}

// expandManifests resolves globs. Patterns without matches are reported as errors.
func expandManifests(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad manifest pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no manifest matches %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", m, err)
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
		}
	}

	return files, nil
}

// buildJobs loads and generates every manifest concurrently, keeping the order of files
func buildJobs(ctx context.Context, cfg *Config, files []string) ([]*job, error) {
	jobs := make([]*job, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			j, err := buildJob(cfg, file)
			if err != nil {
				return err
			}
			jobs[i] = j
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func buildJob(cfg *Config, file string) (*job, error) {
	m, err := surface.LoadManifest(file)
	if err != nil {
		return nil, err
	}

	j := &job{
		source: file,
		name:   firstNonEmpty(cfg.Name, m.Name),
		shell:  targetShell(firstNonEmpty(cfg.Shell, m.Shell)),
	}
	j.root = m.Root()
	j.root.Name = j.name

	depth := completion.DefaultDepth
	switch {
	case cfg.Depth > 0:
		depth = cfg.Depth
	case cfg.Depth < 0:
		depth = 0
	case m.Depth != nil:
		depth = *m.Depth
	}

	options := append(append([]string{}, m.Options...), cfg.Options...)
	j.index, err = completion.NewIndex(j.name, j.root,
		completion.WithDefaultOptions(options...),
		completion.WithDepth(depth))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	j.script = completion.GetGenerator(j.shell).Generate(j.name, j.index)

	slog.Debug("generated completion script",
		"manifest", file,
		"name", j.name,
		"shell", j.shell,
		"depth", depth,
		"commands", len(j.index.Commands(true)))

	return j, nil
}

// targetShell maps a requested shell to a supported one. Anything but fish gets bash.
func targetShell(shell string) string {
	if shell == completion.ShellFish {
		return completion.ShellFish
	}
	if shell != "" && shell != completion.ShellBash {
		slog.Warn("unknown shell, generating bash completion", "shell", shell)
	}
	return completion.ShellBash
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
