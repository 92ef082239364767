package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	color.NoColor = true

	var stdout, stderr bytes.Buffer
	cmd := newCommand(&stdout, &stderr)

	err := cmd.Run(context.Background(), append([]string{"cfglang"}, args...))

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestGet(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, "app.cfg", "set port = 8080\nset name = \"svc\"\n")

	stdout, _, err := run(t, "get", path, "port")
	r.NoError(err)
	r.Equal("8080\n", stdout)

	stdout, _, err = run(t, "get", path, "name")
	r.NoError(err)
	r.Equal("svc\n", stdout)

	_, stderr, err := run(t, "get", path, "missing")
	r.ErrorIs(err, errReported)
	r.Contains(stderr, "[variable not found -4]")
}

func TestSet(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, "app.cfg", "const set max = 100\nset value = 1\n")

	_, _, err := run(t, "set", path, "value", "42")
	r.NoError(err)

	saved, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal("const set max = 100\nset value = 42\n", string(saved))

	_, stderr, err := run(t, "set", path, "max", "1")
	r.ErrorIs(err, errReported)
	r.Contains(stderr, "[const violation -5]")

	_, _, err = run(t, "set", path, "value", "many")
	r.Error(err)
}

func TestFmt(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, "app.cfg", "# settings\nset   x =   1\nif x == 1 { set y = \"a\nb\" }\n")

	_, stderr, err := run(t, "fmt", path)
	r.ErrorIs(err, errReported)
	r.Contains(stderr, "[parse error -3]")

	path = writeFile(t, "app.cfg", "# settings\nset   x =   1\nif x == 1 { set y = #%%%a\nb%%%# }\n")

	stdout, _, err := run(t, "fmt", path)
	r.NoError(err)
	r.Equal("set x = 1\nset y = #%%%\na\nb\n%%%#\n", stdout)

	_, _, err = run(t, "fmt", "-w", path)
	r.NoError(err)

	saved, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal(stdout, string(saved))
}

func TestCheck(t *testing.T) {
	r := require.New(t)

	good := writeFile(t, "good.cfg", "set a = 1\n")
	bad := writeFile(t, "bad.cfg", "set a = 1\nset b = c\n")

	_, _, err := run(t, "check", good)
	r.NoError(err)

	_, stderr, err := run(t, "check", good, bad)
	r.ErrorIs(err, errReported)
	r.Contains(stderr, bad+":2: error [variable not found -4]")
	r.Contains(stderr, "1 of 2 files failed")
}

func TestCheckWithConfig(t *testing.T) {
	r := require.New(t)

	config := writeFile(t, "config.yaml", "max_variables: 1\n")
	path := writeFile(t, "app.cfg", "set a = 1\nset b = 2\n")

	_, _, err := run(t, "check", path)
	r.NoError(err)

	_, stderr, err := run(t, "check", "--config", config, path)
	r.ErrorIs(err, errReported)
	r.Contains(stderr, "[capacity exceeded -6]")
}

func TestTokens(t *testing.T) {
	r := require.New(t)

	path := writeFile(t, "app.cfg", "set x = 1\n")

	stdout, _, err := run(t, "tokens", path)
	r.NoError(err)
	r.Equal("1\tset\n1\tidentifier \"x\"\n1\t'='\n1\tinteger 1\n1\tnewline\n2\tend-of-input\n", stdout)

	path = writeFile(t, "app.cfg", "set x = @\n")

	_, stderr, err := run(t, "tokens", path)
	r.ErrorIs(err, errReported)
	r.Contains(stderr, "[parse error -3]")
}
