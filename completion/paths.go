package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	actualPerm := info.Mode().Perm()
	if actualPerm != perm {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w",
				path, actualPerm, perm, err)
		}
	}

	return nil
}

// xdgDir returns $env when set and absolute, otherwise home joined with fallback
func xdgDir(env, home string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func completionPathsFor(home, shell string) (CompletionPaths, error) {
	switch shell {
	case ShellBash:
		comment := "XDG-compatible user-local bash completions directory"
		switch runtime.GOOS {
		case "windows":
			comment = "Git Bash user completions directory"
		case "darwin":
			comment = "User-local bash completions, compatible with bash-completion@2"
		}
		return CompletionPaths{
			Primary:   filepath.Join(xdgDir("XDG_DATA_HOME", home, ".local", "share"), "bash-completion", "completions"),
			Fallback:  filepath.Join(home, ".bash_completion.d"),
			Extension: "",
			Comment:   comment,
		}, nil

	case ShellFish:
		return CompletionPaths{
			Primary:   filepath.Join(xdgDir("XDG_CONFIG_HOME", home, ".config"), "fish", "completions"),
			Fallback:  filepath.Join(xdgDir("XDG_DATA_HOME", home, ".local", "share"), "fish", "completions"),
			Extension: ".fish",
			Comment:   "Fish user completions directory",
		}, nil

	default:
		return CompletionPaths{}, fmt.Errorf("unsupported shell: %s", shell)
	}
}

func getCompletionPaths(shell string) (CompletionPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return CompletionPaths{}, fmt.Errorf("couldn't get user home directory: %w", err)
	}

	return completionPathsFor(home, shell)
}
