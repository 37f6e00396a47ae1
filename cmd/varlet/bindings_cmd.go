package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/varlet-dev/varlet"
)

func newBindingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bindings [file]",
		Short: "Show the resolved bindings for varlet source code",
		Long: `Bindings resolves every name bound by the program and prints, in
source order, the declaration kind it carries and whether it declares a
new name or reuses an existing one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: bindingsHandler,
	}
}

// bindingRow is the JSON shape for one resolved binding.
type bindingRow struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Mode   string `json:"mode"`
	Rest   bool   `json:"rest,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func bindingsHandler(cmd *cobra.Command, args []string) error {
	sources, err := loadSources(args)
	if err != nil {
		return err
	}
	src := sources[0]

	bindings, err := varlet.Resolve(cmd.Context(), src.Code, varlet.WithFilename(src.Name))
	if err != nil {
		renderDiagnostics(cmd.ErrOrStderr(), err, useColor(os.Stderr))
		return fmt.Errorf("resolution failed")
	}
	log.Debug().Int("bindings", len(bindings)).Msg("resolved")

	rows := make([]bindingRow, 0, len(bindings))
	for _, b := range bindings {
		rows = append(rows, bindingRow{
			Name:   b.Name,
			Kind:   b.Kind.String(),
			Mode:   b.Mode.String(),
			Rest:   b.Rest,
			Line:   b.Pos.LineNumber(),
			Column: b.Pos.ColumnNumber(),
		})
	}

	if outputFormat() == "json" {
		return printJSON(cmd.OutOrStdout(), rows)
	}
	return printBindingTable(cmd, rows)
}

func printBindingTable(cmd *cobra.Command, rows []bindingRow) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tMODE\tLOCATION")
	for _, row := range rows {
		name := row.Name
		if row.Rest {
			name = "..." + name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d:%d\n",
			name, row.Kind, row.Mode, row.Line, row.Column)
	}
	return w.Flush()
}
