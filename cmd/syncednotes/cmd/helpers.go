package cmd

import (
	"fmt"
	"io"

	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/domain"
)

// nodeArg resolves args[i] as a label path. A missing argument returns nil
// so the command falls back to the picker.
func nodeArg(args []string, i int) (*domain.NodeID, error) {
	if i >= len(args) {
		return nil, nil
	}
	n, err := application.Resolve(GetStore().Snapshot(), args[i])
	if err != nil {
		return nil, err
	}
	return commands.At(n.ID()), nil
}

// folderArg is nodeArg for containers, where "/" names the root level
func folderArg(args []string, i int) (*domain.NodeID, error) {
	if i >= len(args) {
		return nil, nil
	}
	if len(application.SplitPath(args[i])) == 0 {
		return commands.At(domain.RootLevel), nil
	}
	return nodeArg(args, i)
}

// report prints a command result. Cancelled commands print nothing.
func report(w io.Writer, res *commands.Result) {
	if res == nil || res.Cancelled {
		return
	}
	fmt.Fprintln(w, res.Message)
}
