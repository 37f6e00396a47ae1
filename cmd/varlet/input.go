package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/viper"
)

// source is one unit of input: code plus the name used in diagnostics.
type source struct {
	Name string
	Code string
}

// loadSources collects the code to analyze. Input comes from the -c flag,
// from stdin when a lone "-" argument is given, or from file arguments.
func loadSources(args []string) ([]source, error) {
	code := viper.GetString("code")
	if code != "" {
		if len(args) > 0 {
			return nil, errors.New("multiple input sources specified")
		}
		return []source{{Name: "<code>", Code: code}}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("no input: pass a file, \"-\" for stdin, or use -c")
	}
	sources := make([]source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return nil, err
			}
			sources = append(sources, source{Name: "<stdin>", Code: string(data)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{Name: arg, Code: string(data)})
	}
	return sources, nil
}
