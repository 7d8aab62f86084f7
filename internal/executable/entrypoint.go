// Where: internal/executable/entrypoint.go
// What: Entrypoint variants for source-directory specs.
// Why: Describe how a project is entered without executing anything.
package executable

// Entrypoint describes how a source directory is entered. It is stored by
// the spec and interpreted only by the execution harness. The two variants
// are ModuleName and CommandList.
type Entrypoint interface {
	isEntrypoint()
}

// ModuleName is a dotted module identifier run as a module by the
// execution harness.
type ModuleName struct {
	Module string
}

func (ModuleName) isEntrypoint() {}

// CommandList is an ordered sequence of shell commands run in order by the
// execution harness. Working directory, shell, and environment semantics
// are the harness's contract.
type CommandList struct {
	commands []string
}

func (CommandList) isEntrypoint() {}

// NewCommandList copies the given commands into a CommandList.
func NewCommandList(commands []string) CommandList {
	out := make([]string, len(commands))
	copy(out, commands)
	return CommandList{commands: out}
}

// Commands returns a copy of the command sequence.
func (c CommandList) Commands() []string {
	out := make([]string, len(c.commands))
	copy(out, c.commands)
	return out
}
