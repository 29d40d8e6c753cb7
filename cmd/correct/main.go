//Command correct is the overlap-correction driver. Its single subcommand,
//correct, runs the banded prefix edit-distance kernel (package editdist)
//over an overlap store's candidate pairs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "correct",
		Short: "Overlap correction for a long-read assembler",
	}
	root.AddCommand(newCorrectCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
