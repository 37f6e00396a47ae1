package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log zerolog.Logger

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "varlet",
		Short: "Declaration-kind analysis for varlet source code",
		Long: `Varlet analyzes source code that uses per-element declaration
keywords inside array destructuring patterns:

    const [foo, let bar, ...rest] = [1, 2, 3, 4]

It reports parse and resolution errors and shows which names each
pattern declares or reuses, with which kinds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("code", "c", "", "Code to analyze")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Bool("verbose", false, "Enable verbose logging")
	pf.StringP("output", "o", "text", "Output format: text or json")

	for _, name := range []string{"code", "no-color", "verbose", "output"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
	// Honor the NO_COLOR convention
	_ = viper.BindEnv("no-color", "NO_COLOR")

	cmd.AddCommand(
		newCheckCmd(),
		newASTCmd(),
		newBindingsCmd(),
		newVersionCmd(),
	)
	return cmd
}

func setupLogging() {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !useColor(os.Stderr),
	}
	log = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// useColor reports whether colored output should be written to f.
func useColor(f *os.File) bool {
	if viper.GetBool("no-color") {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat() == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "varlet %s (%s, %s)\n", version, commit, date)
			return nil
		},
	}
}
