package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

// fishCondition quotes a fish command line for the -n option of complete
func fishCondition(condition string) string {
	return "'" + escapeFish(condition) + "'"
}

func (g *FishGenerator) Generate(programName string, index *Index) string {
	var script strings.Builder
	id := identifier(programName)

	globals := make([]string, 0, len(index.GlobalOptions))
	for _, opt := range index.GlobalOptions.Sorted() {
		globals = append(globals, fishWord(strings.TrimLeft(opt, "-")))
	}

	script.WriteString(fmt.Sprintf(`function __%[1]s_using_command
    set cmd (commandline -opc)
    for i in (seq (count $cmd) 1)
        switch $cmd[$i]
        case "-*"
        case "*"
            if [ $cmd[$i] = $argv[1] ]
                return 0
            else
                return 1
            end
        end
    end
    return 1
end

function __%[1]s_option_entered_check
    set cmd (commandline -opc)
    for i in (seq (count $cmd))
        switch $cmd[$i]
        case "-*"
            if [ $cmd[$i] = $argv[1] ]
                return 1
            end
        end
    end
    return 0
end

function __%[1]s_is_prev_global
    set cmd (commandline -opc)
    set global_options %[2]s
    set prev (count $cmd)

    for opt in $global_options
        if [ "--$opt" = $cmd[$prev] ]
            echo $prev
            return 0
        end
    end
    return 1
end

`, id, strings.Join(globals, " ")))

	name := fishWord(programName)
	for _, command := range index.Commands(false) {
		using := fmt.Sprintf("__%s_using_command %s", id, fishWord(command))
		for _, sub := range index.SubcommandsFor(command).Sorted() {
			script.WriteString(fmt.Sprintf("complete -c %s -n %s -f -a %s\n",
				name, fishCondition(using), fishWord(sub)))
		}

		prevGlobal := ""
		if command != programName {
			prevGlobal = fmt.Sprintf(" and __%s_is_prev_global;", id)
		}
		for _, opt := range index.OptionsFor(command).Union(index.GlobalOptions).Sorted() {
			flag := strings.TrimLeft(opt, "-")
			condition := fmt.Sprintf("%s;%s and __%s_option_entered_check %s",
				using, prevGlobal, id, fishWord("--"+flag))
			script.WriteString(fmt.Sprintf("complete -c %s -n %s -l %s\n",
				name, fishCondition(condition), fishWord(flag)))
		}
	}

	return script.String()
}
