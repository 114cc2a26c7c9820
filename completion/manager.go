package completion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// ErrNoScript is returned when SaveCompletion is called before Accept
var ErrNoScript = errors.New("no completion script generated")

type CompletionManager struct {
	Shell       string
	ProgramName string
	Paths       CompletionPaths
	generator   Generator
	script      string
	unchanged   bool
}

// NewCompletionManager creates a completion manager which can be used to manage and save completion scripts for a given shell
func NewCompletionManager(shell, programName string) (*CompletionManager, error) {
	paths, err := getCompletionPaths(shell)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion paths: %w", err)
	}

	return &CompletionManager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
		generator:   GetGenerator(shell),
	}, nil
}

// Accept generates and stores the completion script from the provided index
func (cm *CompletionManager) Accept(index *Index) {
	cm.script = cm.generator.Generate(cm.ProgramName, index)
}

// Script returns the script produced by the last Accept
func (cm *CompletionManager) Script() string {
	return cm.script
}

// Unchanged reports whether the last SaveCompletion found identical content on disk and skipped the write
func (cm *CompletionManager) Unchanged() bool {
	return cm.unchanged
}

// SaveCompletion saves the previously generated completion script. An existing file with
// the same content is left untouched.
func (cm *CompletionManager) SaveCompletion() error {
	if cm.script == "" {
		return ErrNoScript
	}

	if err := cm.ensureCompletionPath(); err != nil {
		return err
	}

	path := cm.CompletionFilePath()
	cm.unchanged = false
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(cm.script):
		cm.unchanged = true
		return ensurePermission(path, 0644)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read completion file: %w", err)
	}

	if err := os.WriteFile(path, []byte(cm.script), 0644); err != nil {
		return fmt.Errorf("failed to write completion file: %w", err)
	}

	return ensurePermission(path, 0644)
}

func (cm *CompletionManager) ensureCompletionPath() error {
	perm := os.FileMode(0755)
	err := os.MkdirAll(cm.Paths.Primary, perm)
	if err == nil {
		err = ensurePermission(cm.Paths.Primary, perm)
	}
	if err == nil {
		return nil
	}

	if cm.Paths.Fallback != "" {
		if err := os.MkdirAll(cm.Paths.Fallback, perm); err != nil {
			return fmt.Errorf("failed to create fallback completion directory: %w", err)
		}
		if err := ensurePermission(cm.Paths.Fallback, perm); err != nil {
			return err
		}
		cm.Paths.Primary = cm.Paths.Fallback
		return nil
	}

	return fmt.Errorf("failed to create completion directories: %w", err)
}

func (cm *CompletionManager) getShellFileConventions() CompletionFileInfo {
	switch cm.Shell {
	case ShellBash:
		return CompletionFileInfo{
			Comment: "Bash completion files are typically just the command name",
		}
	case ShellFish:
		return CompletionFileInfo{
			Extension: ".fish",
			Comment:   "Fish completion files must end in .fish",
		}
	default:
		return CompletionFileInfo{}
	}
}

// CompletionFilePath is where SaveCompletion writes the script
func (cm *CompletionManager) CompletionFilePath() string {
	conventions := cm.getShellFileConventions()
	filename := cm.ProgramName + conventions.Extension
	return filepath.Join(cm.Paths.Primary, filename)
}
