// Package varlet analyzes declaration kinds in varlet source code.
//
// Varlet extends array destructuring with per-element declaration keywords:
//
//	const [foo, let bar, ...rest] = [1, 2, 3, 4]
//
// The package parses source text and resolves every bound name to a
// declaration kind (var, let, or const) and a mode that says whether the
// name is newly declared or reuses an existing binding.
package varlet

import (
	"context"

	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/parser"
	"github.com/varlet-dev/varlet/resolver"
)

// Option configures a varlet analysis.
type Option func(*options)

type options struct {
	filename string
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

func (o *options) resolverOpts(source string) []resolver.Option {
	opts := []resolver.Option{resolver.WithSource(source)}
	if o.filename != "" {
		opts = append(opts, resolver.WithFilename(o.filename))
	}
	return opts
}

// WithFilename sets the filename used in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithMaxDepth limits the nesting depth accepted by the parser.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Parse parses varlet source code and returns its AST.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// Resolve parses varlet source code and resolves every bound name to its
// declaration kind and scope mode. Bindings are returned in source order.
func Resolve(ctx context.Context, source string, opts ...Option) ([]resolver.Binding, error) {
	o := collectOptions(opts...)
	prog, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	r := resolver.New(o.resolverOpts(source)...)
	return r.ResolveProgram(prog)
}

// Check parses and resolves varlet source code, reporting any parse or
// resolve errors. A nil return means the source is well-formed.
func Check(ctx context.Context, source string, opts ...Option) error {
	_, err := Resolve(ctx, source, opts...)
	return err
}
