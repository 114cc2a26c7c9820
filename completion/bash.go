// completion/bash.go
package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

// bashWords renders words as elements of a bash array literal
func bashWords(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, bashWord(w))
	}
	return strings.Join(quoted, " ")
}

// Generate renders the index as a bash completion function. Candidates are kept in arrays of
// single-quoted words and matched by prefix, so member names are never expanded by the shell.
func (g *BashGenerator) Generate(programName string, index *Index) string {
	var script strings.Builder
	id := identifier(programName)

	script.WriteString(fmt.Sprintf(`# bash completion support for %[1]s
# DO NOT EDIT.
# This script is generated by firecomplete.

__%[2]s_completion()
{
  local cur prev lastcommand opt
  local -a opts GLOBAL_OPTIONS
  COMPREPLY=()
  prev="${COMP_WORDS[COMP_CWORD-1]}"
  cur="${COMP_WORDS[COMP_CWORD]}"
  lastcommand="$(__%[2]s_lastcommand)"

  opts=(%[3]s)
  GLOBAL_OPTIONS=(%[4]s)

  case "${lastcommand}" in`,
		strings.ReplaceAll(programName, "\n", " "), id,
		bashWords(index.DefaultOptions().Sorted()),
		bashWords(index.GlobalOptions.Sorted())))

	// one branch per command; the root never restricts to global options
	for _, command := range index.Commands(true) {
		options := bashWords(index.OptionsFor(command).Union(index.SubcommandsFor(command)).Sorted())
		script.WriteString(fmt.Sprintf(`
    %s)`, bashWord(command)))
		if command == programName {
			script.WriteString(fmt.Sprintf(`
      opts=(%s "${GLOBAL_OPTIONS[@]}")`, options))
		} else {
			script.WriteString(fmt.Sprintf(`
      if __%s_is_prev_global; then
        opts=("${GLOBAL_OPTIONS[@]}")
      else
        opts=(%s "${GLOBAL_OPTIONS[@]}")
      fi`, id, options))
		}
		script.WriteString(fmt.Sprintf(`
      __%s_filter_options
    ;;`, id))
	}

	script.WriteString(fmt.Sprintf(`
  esac

  for opt in "${opts[@]}"; do
    if [[ "${opt}" == "${cur}"* ]]; then
      COMPREPLY+=("${opt}")
    fi
  done
  return 0
}

__%[1]s_lastcommand()
{
  local lastcommand i

  lastcommand=
  for ((i=0; i < ${#COMP_WORDS[@]}; ++i)); do
    if [[ ${COMP_WORDS[i]} != -* ]] && [[ -n ${COMP_WORDS[i]} ]] && [[ ${COMP_WORDS[i]} != "$cur" ]]; then
      lastcommand=${COMP_WORDS[i]}
    fi
  done

  printf '%%s\n' "$lastcommand"
}

__%[1]s_filter_options()
{
  local -a kept=()
  local opt
  for opt in "${opts[@]}"
  do
    if ! __%[1]s_option_entered "$opt"; then
      kept+=("$opt")
    fi
  done

  opts=("${kept[@]}")
}

__%[1]s_option_entered()
{
  local word
  for word in "${COMP_WORDS[@]:0:$COMP_CWORD}"
  do
    if [[ "$1" == "$word" ]]; then
      return 0
    fi
  done
  return 1
}

__%[1]s_is_prev_global()
{
  local opt
  for opt in "${GLOBAL_OPTIONS[@]}"
  do
    if [[ "$opt" == "$prev" ]]; then
      return 0
    fi
  done
  return 1
}

complete -F __%[1]s_completion %[2]s
`, id, bashWord(programName)))

	return script.String()
}
