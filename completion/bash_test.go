package completion

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBash(t *testing.T) string {
	t.Helper()
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}
	return bash
}

func TestBashScriptQuotesMemberNames(t *testing.T) {
	bash := requireBash(t)
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	substitution := FormatToken("$(touch " + marker + ")")
	tree := map[string]any{
		"$(touch " + marker + ")": func() {},
		"`touch " + marker + "`":  func() {},
		`a"b`:                     func() {},
		"it's":                    func() {},
		"sub cmd":                 map[string]any{"inner": func() {}},
		`back\slash`:              func() {},
	}

	script, err := Script("mytool", tree, ShellBash)
	require.NoError(t, err)
	scriptPath := filepath.Join(dir, "mytool.bash")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0644))

	out, err := exec.Command(bash, "-n", scriptPath).CombinedOutput()
	require.NoError(t, err, "bash -n: %s", out)

	complete := func(words ...string) []string {
		t.Helper()
		cmd := exec.Command(bash, "-c", `
source "$1"
shift
COMP_WORDS=("$@")
COMP_CWORD=$(( ${#COMP_WORDS[@]} - 1 ))
__mytool_completion
printf '%s\n' "${COMPREPLY[@]}"
`, "complete", scriptPath)
		cmd.Args = append(cmd.Args, words...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "%s", out)
		var lines []string
		for _, line := range strings.Split(strings.TrimSuffix(string(out), "\n"), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	}

	got := complete("mytool", "")
	assert.ElementsMatch(t, []string{
		substitution,
		FormatToken("`touch " + marker + "`"),
		`a"b`,
		"it's",
		"sub cmd",
		`back\slash`,
	}, got)
	assert.NoFileExists(t, marker)
	assert.NoFileExists(t, strings.ReplaceAll(marker, "_", "-"))

	assert.Equal(t, []string{"sub cmd"}, complete("mytool", "sub"))
	assert.Equal(t, []string{"inner"}, complete("mytool", "sub cmd", ""))
	assert.Equal(t, []string{`a"b`}, complete("mytool", `a"`))
}
