// completion/paths_test.go
package completion

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetCompletionPaths(t *testing.T) {
	tests := []struct {
		name       string
		shell      string
		wantErr    bool
		checkPaths func(t *testing.T, paths CompletionPaths)
	}{
		{
			name:  "bash paths",
			shell: "bash",
			checkPaths: func(t *testing.T, paths CompletionPaths) {
				if !filepath.IsAbs(paths.Primary) {
					t.Error("Primary path should be absolute")
				}
				if !strings.Contains(paths.Primary, filepath.Join("bash-completion", "completions")) {
					t.Error("Expected bash completion path")
				}
				if paths.Extension != "" {
					t.Errorf("Bash scripts should not have an extension, got %q", paths.Extension)
				}
			},
		},
		{
			name:  "fish paths",
			shell: "fish",
			checkPaths: func(t *testing.T, paths CompletionPaths) {
				if !strings.Contains(paths.Primary, filepath.Join("fish", "completions")) {
					t.Error("Expected fish completion path")
				}
				if paths.Extension != ".fish" {
					t.Errorf("Expected .fish extension, got %q", paths.Extension)
				}
			},
		},
		{
			name:    "zsh is not supported",
			shell:   "zsh",
			wantErr: true,
		},
		{
			name:    "invalid shell",
			shell:   "invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := getCompletionPaths(tt.shell)
			if (err != nil) != tt.wantErr {
				t.Errorf("getCompletionPaths() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.checkPaths != nil {
				tt.checkPaths(t, paths)
			}
		})
	}
}

func TestCompletionPathsHonourXDG(t *testing.T) {
	dataHome := filepath.Join(t.TempDir(), "data")
	configHome := filepath.Join(t.TempDir(), "config")
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	bash, err := completionPathsFor("/home/someone", ShellBash)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dataHome, "bash-completion", "completions"); bash.Primary != want {
		t.Errorf("bash primary = %q, want %q", bash.Primary, want)
	}

	fish, err := completionPathsFor("/home/someone", ShellFish)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(configHome, "fish", "completions"); fish.Primary != want {
		t.Errorf("fish primary = %q, want %q", fish.Primary, want)
	}
	if want := filepath.Join(dataHome, "fish", "completions"); fish.Fallback != want {
		t.Errorf("fish fallback = %q, want %q", fish.Fallback, want)
	}

	t.Setenv("XDG_DATA_HOME", "relative/dir")
	bash, _ = completionPathsFor("/home/someone", ShellBash)
	if !strings.HasPrefix(bash.Primary, filepath.Join("/home/someone", ".local", "share")) {
		t.Errorf("relative XDG_DATA_HOME should be ignored, got %q", bash.Primary)
	}
}

func TestEnsurePermission(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Permission tests not applicable on Windows")
	}

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test")

	tests := []struct {
		name    string
		setup   func() error
		perm    os.FileMode
		wantErr bool
	}{
		{
			name: "fix restrictive permissions",
			setup: func() error {
				return os.WriteFile(testFile, []byte("test"), 0600)
			},
			perm: 0644,
		},
		{
			name: "maintain correct permissions",
			setup: func() error {
				return os.WriteFile(testFile, []byte("test"), 0644)
			},
			perm: 0644,
		},
		{
			name: "missing file",
			setup: func() error {
				return os.Remove(testFile)
			},
			perm:    0644,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.setup(); err != nil {
				t.Fatal(err)
			}

			err := ensurePermission(testFile, tt.perm)
			if (err != nil) != tt.wantErr {
				t.Errorf("ensurePermission() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr {
				info, err := os.Stat(testFile)
				if err != nil {
					t.Fatal(err)
				}
				if perm := info.Mode().Perm(); perm != tt.perm {
					t.Errorf("Wrong permissions: got %o, want %o", perm, tt.perm)
				}
			}
		})
	}
}
