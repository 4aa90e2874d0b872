package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <hash-prefix>",
		Short: "List commits whose tree contains an object with the given hash prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, matches, err := a.findMatches(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "no commits contain %s\n", strings.ToLower(strings.TrimSpace(args[0])))
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%s %s\n", m.Hash, firstLine(m.Message))
			}
			return nil
		},
	}
}

func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return line
}
