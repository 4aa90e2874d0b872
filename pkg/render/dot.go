// Package render serializes ancestry graphs and hands them to an external
// graph layout program.
package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/odvcencio/blobtrace/pkg/ancestry"
)

// GraphComment is written as the first line of every DOT file.
const GraphComment = "Commit Dependency Graph"

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// WriteDOT writes g in Graphviz DOT syntax. Nodes and edges are sorted so
// the output is stable for a given graph.
func WriteDOT(w io.Writer, g *ancestry.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// %s\n", GraphComment)
	bw.WriteString("digraph {\n")
	for _, n := range g.SortedNodes() {
		fmt.Fprintf(bw, "\t%s [label=%s]\n", quote(string(n.Hash)), quote(n.Label))
	}
	for _, e := range g.SortedEdges() {
		fmt.Fprintf(bw, "\t%s -> %s\n", quote(string(e.Child)), quote(string(e.Parent)))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// RenderImage runs "<program> -T<format> <dotPath> -O", which makes
// Graphviz write the image next to dotPath with the format appended to its
// name. It returns the path of that image.
func RenderImage(ctx context.Context, program, dotPath, format string) (string, error) {
	if strings.TrimSpace(program) == "" {
		return "", fmt.Errorf("render: program is required")
	}
	cmd := exec.CommandContext(ctx, program, "-T"+format, dotPath, "-O")
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return "", fmt.Errorf("render: %s: %w: %s", program, err, msg)
		}
		return "", fmt.Errorf("render: %s: %w", program, err)
	}
	return dotPath + "." + format, nil
}
