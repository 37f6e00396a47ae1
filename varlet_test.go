package varlet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/resolver"
)

func TestParse(t *testing.T) {
	prog, err := Parse(context.Background(), "const [a, b] = [1, 2]")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	_, ok := prog.Stmts[0].(*ast.Destructure)
	assert.True(t, ok)
}

func TestResolve(t *testing.T) {
	bindings, err := Resolve(context.Background(),
		"const [foo, let bar, ...rest] = [1, 2, 3, 4]")
	require.NoError(t, err)
	require.Len(t, bindings, 3)

	assert.Equal(t, "foo", bindings[0].Name)
	assert.Equal(t, ast.ConstKind, bindings[0].Kind)
	assert.Equal(t, resolver.Declare, bindings[0].Mode)

	assert.Equal(t, "bar", bindings[1].Name)
	assert.Equal(t, ast.LetKind, bindings[1].Kind)

	assert.Equal(t, "rest", bindings[2].Name)
	assert.Equal(t, ast.ConstKind, bindings[2].Kind)
	assert.True(t, bindings[2].Rest)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(context.Background(), "let [a, b] = xs"))
	assert.Error(t, Check(context.Background(), "[a, b] = xs"))
	assert.Error(t, Check(context.Background(), "let [a, ...b, c] = xs"))
}

func TestCheckWithFilename(t *testing.T) {
	err := Check(context.Background(), "[oops] = xs", WithFilename("main.vl"))
	require.Error(t, err)

	var missing *resolver.MissingDeclarationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "main.vl", missing.Filename)
}
