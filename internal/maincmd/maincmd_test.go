package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/loxvm/internal/maincmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func stdioWith(stdin string) (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return mainer.Stdio{
		Stdin:  bytes.NewBufferString(stdin),
		Stdout: &out,
		Stderr: &errOut,
	}, &out, &errOut
}

func TestRunFromStdin(t *testing.T) {
	c := &maincmd.Cmd{}
	stdio, out, errOut := stdioWith(`print 1 + 1;`)
	err := c.Run(context.Background(), stdio, nil)
	require.NoError(t, err)
	require.Equal(t, "2\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRunFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print "hi";`), 0o600))

	c := &maincmd.Cmd{}
	stdio, out, _ := stdioWith("")
	err := c.Run(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	require.Equal(t, "hi\n", out.String())
}

func TestRunReportsRuntimeError(t *testing.T) {
	c := &maincmd.Cmd{}
	stdio, _, errOut := stdioWith(`print 1 + "x";`)
	err := c.Run(context.Background(), stdio, nil)
	require.Error(t, err)
	require.Contains(t, errOut.String(), "Operands must be two numbers or two strings.")
}

func TestTokenizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`var x = 1;`), 0o600))

	c := &maincmd.Cmd{}
	stdio, out, _ := stdioWith("")
	err := c.Tokenize(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	require.Contains(t, out.String(), "identifier")
	require.Contains(t, out.String(), `"x"`)
}

func TestDisassembleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print 1 + 2;`), 0o600))

	c := &maincmd.Cmd{}
	stdio, out, _ := stdioWith("")
	err := c.Disassemble(context.Background(), stdio, []string{path})
	require.NoError(t, err)
	require.Contains(t, out.String(), "OP_ADD")
}

func TestValidateRequiresCommand(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs(nil)
	require.Error(t, c.Validate())
}

func TestValidateTokenizeRequiresFile(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"tokenize"})
	require.Error(t, c.Validate())
}

func TestValidateReplRejectsArgs(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"repl", "extra"})
	require.Error(t, c.Validate())
}
