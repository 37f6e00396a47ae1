package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/varlet-dev/varlet"
	"github.com/varlet-dev/varlet/ast"
)

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the AST for varlet source code",
		Args:  cobra.MaximumNArgs(1),
		RunE:  astHandler,
	}
}

func astHandler(cmd *cobra.Command, args []string) error {
	sources, err := loadSources(args)
	if err != nil {
		return err
	}
	src := sources[0]

	prog, err := varlet.Parse(cmd.Context(), src.Code, varlet.WithFilename(src.Name))
	if err != nil {
		renderDiagnostics(cmd.ErrOrStderr(), err, useColor(os.Stderr))
		return fmt.Errorf("parsing failed")
	}
	log.Debug().Int("statements", len(prog.Stmts)).Msg("parsed")

	if outputFormat() == "json" {
		return printJSON(cmd.OutOrStdout(), nodeToJSON(prog))
	}
	for _, stmt := range prog.Stmts {
		fmt.Fprintln(cmd.OutOrStdout(), stmt.String())
	}
	return nil
}

// nodeToJSON converts an AST node into a plain structure for JSON output.
func nodeToJSON(node ast.Node) any {
	switch n := node.(type) {
	case *ast.Program:
		stmts := make([]any, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			stmts = append(stmts, nodeToJSON(s))
		}
		return map[string]any{"type": "program", "statements": stmts}
	case *ast.Declare:
		return map[string]any{
			"type":  "declare",
			"kind":  n.Kind.String(),
			"name":  n.Name.Name,
			"value": nodeToJSON(n.Value),
		}
	case *ast.Assign:
		return map[string]any{
			"type":  "assign",
			"name":  n.Name.Name,
			"value": nodeToJSON(n.Value),
		}
	case *ast.Destructure:
		elems := make([]any, 0, len(n.Elems))
		for _, e := range n.Elems {
			elems = append(elems, patternElemToJSON(e))
		}
		out := map[string]any{
			"type":     "destructure",
			"elements": elems,
			"value":    nodeToJSON(n.Value),
		}
		if n.DefaultKind.IsValid() {
			out["defaultKind"] = n.DefaultKind.String()
		}
		return out
	case *ast.Block:
		stmts := make([]any, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			stmts = append(stmts, nodeToJSON(s))
		}
		return map[string]any{"type": "block", "statements": stmts}
	case *ast.Ident:
		return map[string]any{"type": "ident", "name": n.Name}
	case *ast.Int:
		return map[string]any{"type": "int", "value": n.Value}
	case *ast.Float:
		return map[string]any{"type": "float", "value": n.Value}
	case *ast.String:
		return map[string]any{"type": "string", "value": n.Value}
	case *ast.Bool:
		return map[string]any{"type": "bool", "value": n.Value}
	case *ast.Nil:
		return map[string]any{"type": "nil"}
	case *ast.List:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, nodeToJSON(item))
		}
		return map[string]any{"type": "list", "items": items}
	case *ast.Prefix:
		return map[string]any{
			"type":    "prefix",
			"op":      n.Op,
			"operand": nodeToJSON(n.X),
		}
	case *ast.Infix:
		return map[string]any{
			"type":  "infix",
			"op":    n.Op,
			"left":  nodeToJSON(n.X),
			"right": nodeToJSON(n.Y),
		}
	case *ast.Spread:
		return map[string]any{"type": "spread", "operand": nodeToJSON(n.X)}
	case *ast.Index:
		return map[string]any{
			"type":      "index",
			"container": nodeToJSON(n.X),
			"key":       nodeToJSON(n.Key),
		}
	case *ast.Call:
		args := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, nodeToJSON(a))
		}
		return map[string]any{
			"type":      "call",
			"function":  nodeToJSON(n.Fun),
			"arguments": args,
		}
	default:
		return map[string]any{"type": fmt.Sprintf("%T", node)}
	}
}

func patternElemToJSON(elem ast.PatternElem) any {
	out := map[string]any{}
	if elem.Name == nil {
		out["elided"] = true
		return out
	}
	out["name"] = elem.Name.Name
	if elem.Kind.IsValid() {
		out["kind"] = elem.Kind.String()
	}
	if elem.Rest {
		out["rest"] = true
	}
	if elem.Default != nil {
		out["default"] = nodeToJSON(elem.Default)
	}
	return out
}
