package completion

const (
	ShellBash = "bash"
	ShellFish = "fish"
)

// Generator renders an Index as a completion script for one shell
type Generator interface {
	Generate(programName string, index *Index) string
}

// GetGenerator returns the generator for shell. Unknown shells get the bash generator.
func GetGenerator(shell string) Generator {
	switch shell {
	case ShellFish:
		return &FishGenerator{}
	case ShellBash:
		fallthrough
	default:
		return &BashGenerator{}
	}
}
