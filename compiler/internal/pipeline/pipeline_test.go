package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSuccessProducesInstructions(t *testing.T) {
	res := Compile("x = 1 + 2\n", Options{EmitIR: true})
	require.True(t, res.Success)
	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Instructions, 2)
	assert.Equal(t, "t1 = 1 + 2", res.Instructions[0].Text)
	assert.Equal(t, "x = t1", res.Instructions[1].Text)
}

func TestCompileHaltsBeforeSemanticOnParseError(t *testing.T) {
	res := Compile("if x\n    y = 1\n", Options{EmitIR: true})
	assert.False(t, res.Success)
	assert.Nil(t, res.Instructions)
	assert.Equal(t, 2, res.ExitCode())
}

func TestCompileHaltsBeforeEmitterOnSemanticError(t *testing.T) {
	res := Compile("y = z + 1\n", Options{EmitIR: true})
	assert.False(t, res.Success)
	assert.Nil(t, res.Instructions)
	assert.Equal(t, 3, res.ExitCode())

	var found bool
	for _, d := range res.Diagnostics {
		if d.Kind == "UndefinedVariable" {
			found = true
		}
	}
	assert.True(t, found, "expected an UndefinedVariable diagnostic")
}

func TestCompileIsDeterministic(t *testing.T) {
	src := "def f(n):\n    if n <= 1:\n        return 1\n    return n * f(n - 1)\nr = f(5)\n"
	first := Compile(src, Options{EmitIR: true})
	second := Compile(src, Options{EmitIR: true})
	require.Equal(t, len(first.Instructions), len(second.Instructions))
	for i := range first.Instructions {
		assert.Equal(t, first.Instructions[i].Text, second.Instructions[i].Text)
	}
}

func TestCompileWithoutEmitIRSkipsEmitter(t *testing.T) {
	res := Compile("x = 1\n", Options{EmitIR: false})
	assert.True(t, res.Success)
	assert.Nil(t, res.Instructions)
}

func TestCompileDebugRetainsTokensAndAST(t *testing.T) {
	res := Compile("x = 1\n", Options{EmitIR: true, Debug: true})
	require.NotEmpty(t, res.Tokens)
	require.NotNil(t, res.AST)
	require.NotNil(t, res.Symbols)
}

func TestResultSummaryReportsPerPhaseCounts(t *testing.T) {
	res := Compile("y = z + 1\n", Options{EmitIR: true})
	assert.Equal(t, "lex: 0, parse: 0, semantic: 1, codegen: 0", res.Summary())
}
