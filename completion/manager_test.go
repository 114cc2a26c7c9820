package completion

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestCompletionManager_Accept(t *testing.T) {
	index := BuildIndex("mytool", []Path{{"run"}, {"run", "--verbose"}}, []string{"--quiet"})

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F __mytool_completion mytool", `opts=(--quiet --verbose "${GLOBAL_OPTIONS[@]}")`}},
		{"fish", []string{"function __mytool_using_command", "-l verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			manager, err := NewCompletionManager(tt.shell, "/usr/local/bin/mytool")
			if err != nil {
				t.Fatal(err)
			}
			if manager.ProgramName != "mytool" {
				t.Errorf("ProgramName = %q, want base name", manager.ProgramName)
			}

			manager.Accept(index)
			for _, want := range tt.contains {
				if !strings.Contains(manager.Script(), want) {
					t.Errorf("Script should contain %q", want)
				}
			}
		})
	}
}

func TestCompletionManager_getShellFileConventions(t *testing.T) {
	tests := []struct {
		shell         string
		wantExtension string
		wantErr       bool
	}{
		{"bash", "", false},
		{"fish", ".fish", false},
		{"zsh", "", true},
		{"powershell", "", true},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			manager, err := NewCompletionManager(tt.shell, "mytool")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCompletionManager() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			got := manager.getShellFileConventions()
			if got.Extension != tt.wantExtension {
				t.Errorf("getShellFileConventions() extension = %q, want %q", got.Extension, tt.wantExtension)
			}
		})
	}
}

func TestCompletionManager_SaveCompletion(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		shell       string
		programName string
		setup       func(*CompletionManager)
		checkFile   func(*testing.T, string)
		wantErr     error
	}{
		{
			name:        "bash save",
			shell:       "bash",
			programName: "mytool",
			setup: func(cm *CompletionManager) {
				cm.script = "test script"
			},
			checkFile: func(t *testing.T, path string) {
				if !strings.HasSuffix(path, "mytool") {
					t.Error("Bash completion file should not have extension")
				}
			},
		},
		{
			name:        "fish save",
			shell:       "fish",
			programName: "mytool",
			setup: func(cm *CompletionManager) {
				cm.script = "test script"
			},
			checkFile: func(t *testing.T, path string) {
				if !strings.HasSuffix(path, ".fish") {
					t.Error("Fish completion file should have .fish extension")
				}
			},
		},
		{
			name:        "no script",
			shell:       "bash",
			programName: "mytool",
			wantErr:     ErrNoScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewCompletionManager(tt.shell, tt.programName)
			if err != nil {
				t.Fatal(err)
			}

			// Override paths for testing
			manager.Paths.Primary = filepath.Join(tmpDir, tt.name)
			manager.Paths.Fallback = filepath.Join(tmpDir, tt.name+"_fallback")

			if tt.setup != nil {
				tt.setup(manager)
			}

			err = manager.SaveCompletion()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveCompletion() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}

			path := manager.CompletionFilePath()
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read file: %v", err)
			}
			if string(content) != "test script" {
				t.Errorf("Wrong content: %q", content)
			}
			if tt.checkFile != nil {
				tt.checkFile(t, path)
			}
		})
	}
}

func TestCompletionManager_SaveUnchanged(t *testing.T) {
	manager, err := NewCompletionManager("bash", "mytool")
	if err != nil {
		t.Fatal(err)
	}
	manager.Paths.Primary = t.TempDir()
	manager.Accept(BuildIndex("mytool", []Path{{"run"}}, nil))

	if err := manager.SaveCompletion(); err != nil {
		t.Fatal(err)
	}
	if manager.Unchanged() {
		t.Error("First save should write the file")
	}

	path := manager.CompletionFilePath()
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	if err := manager.SaveCompletion(); err != nil {
		t.Fatal(err)
	}
	if !manager.Unchanged() {
		t.Error("Second save of identical content should be skipped")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Errorf("File was rewritten: mtime %v, want %v", info.ModTime(), past)
	}

	manager.Accept(BuildIndex("mytool", []Path{{"run"}, {"stop"}}, nil))
	if err := manager.SaveCompletion(); err != nil {
		t.Fatal(err)
	}
	if manager.Unchanged() {
		t.Error("Changed content should be written")
	}
}

func TestCompletionManager_Fallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Permission tests not applicable on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	tmpDir := t.TempDir()
	locked := filepath.Join(tmpDir, "locked")
	if err := os.MkdirAll(locked, 0555); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0755)

	manager, err := NewCompletionManager("fish", "mytool")
	if err != nil {
		t.Fatal(err)
	}
	manager.Paths.Primary = filepath.Join(locked, "completions")
	manager.Paths.Fallback = filepath.Join(tmpDir, "fallback")
	manager.Accept(BuildIndex("mytool", []Path{{"run"}}, nil))

	if err := manager.SaveCompletion(); err != nil {
		t.Fatal(err)
	}
	if got := manager.CompletionFilePath(); got != filepath.Join(tmpDir, "fallback", "mytool.fish") {
		t.Errorf("CompletionFilePath() = %q, want fallback", got)
	}
}
