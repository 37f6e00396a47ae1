package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/varlet-dev/varlet"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Check varlet source for parse and resolution errors",
		RunE:  checkHandler,
	}
}

func checkHandler(cmd *cobra.Command, args []string) error {
	sources, err := loadSources(args)
	if err != nil {
		return err
	}

	colored := useColor(os.Stdout)
	var result error
	failed := 0

	for _, src := range sources {
		log.Debug().Str("file", src.Name).Int("bytes", len(src.Code)).Msg("checking")
		checkErr := varlet.Check(cmd.Context(), src.Code, varlet.WithFilename(src.Name))
		if checkErr != nil {
			failed++
			result = multierror.Append(result, checkErr)
			renderDiagnostics(cmd.OutOrStdout(), checkErr, colored)
			continue
		}
		if outputFormat() != "json" {
			ok := "ok"
			if colored {
				ok = color.GreenString(ok)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", src.Name, ok)
		}
	}

	if outputFormat() == "json" {
		summary := map[string]any{
			"checked": len(sources),
			"failed":  failed,
		}
		if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	}
	if result != nil {
		return fmt.Errorf("%d of %d files failed", failed, len(sources))
	}
	return nil
}
