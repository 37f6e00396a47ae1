package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	verrors "github.com/varlet-dev/varlet/errors"
	"github.com/varlet-dev/varlet/parser"
)

func outputFormat() string {
	return strings.ToLower(viper.GetString("output"))
}

func printJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// renderDiagnostics writes err to w using the rich error formatter where
// the error carries source locations, and plain text otherwise.
func renderDiagnostics(w io.Writer, err error, colored bool) {
	formatted := collectFormatted(err)
	if len(formatted) == 0 {
		fmt.Fprintln(w, err)
		return
	}
	formatter := verrors.NewFormatter(colored)
	fmt.Fprint(w, formatter.FormatMultiple(formatted))
}

// collectFormatted walks an error tree and gathers every formattable error.
func collectFormatted(err error) []*verrors.FormattedError {
	var out []*verrors.FormattedError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case *parser.Errors:
			out = append(out, v.ToFormattedMultiple()...)
			return
		case verrors.FormattableError:
			out = append(out, v.ToFormatted())
			return
		}
		switch u := e.(type) {
		case interface{ WrappedErrors() []error }:
			for _, inner := range u.WrappedErrors() {
				walk(inner)
			}
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
