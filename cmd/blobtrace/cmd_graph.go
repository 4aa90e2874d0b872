package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/blobtrace/pkg/ancestry"
	"github.com/odvcencio/blobtrace/pkg/render"
)

func newGraphCmd(a *app) *cobra.Command {
	var noRender bool
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "graph <hash-prefix>",
		Short: "Write the ancestry graph of matching commits and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, matches, err := a.findMatches(cmd, args[0])
			if err != nil {
				return err
			}
			g := ancestry.Build(src, matches, a.logger)
			a.logger.Debug("ancestry graph built",
				zap.Int("matches", len(matches)),
				zap.Int("nodes", len(g.Nodes)),
				zap.Int("edges", len(g.Edges)))

			out := cmd.OutOrStdout()
			if asYAML {
				return render.WriteYAML(out, g)
			}

			rc := a.cfg.Render
			if err := writeDOTFile(rc.Output, g); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s (%d commits, %d edges)\n", rc.Output, len(g.Nodes), len(g.Edges))
			if noRender {
				return nil
			}

			image, err := render.RenderImage(cmd.Context(), rc.Program, rc.Output, rc.Format)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "rendered %s\n", image)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&noRender, "no-render", false, "write the DOT file without running the layout program")
	flags.BoolVar(&asYAML, "yaml", false, "print the graph as YAML instead of writing a DOT file")
	flags.StringP("output", "o", a.v.GetString("render.output"), "DOT file to write")
	flags.String("program", a.v.GetString("render.program"), "Graphviz layout program")
	flags.StringP("image-format", "T", a.v.GetString("render.format"), "image format passed to the layout program")
	for key, name := range map[string]string{
		"render.output":  "output",
		"render.program": "program",
		"render.format":  "image-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

// writeDOTFile writes g to path, creating parent directories.
func writeDOTFile(path string, g *ancestry.Graph) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	if err := render.WriteDOT(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write graph: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return nil
}
