package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	cli
	out, err bytes.Buffer
}

func newHarness(fsys billy.Filesystem, env map[string]string) *harness {
	h := &harness{}
	h.cli = cli{
		stdout: &h.out,
		stderr: &h.err,
		fs:     fsys,
		dir:    "/work",
		getenv: func(k string) string { return env[k] },
	}
	return h
}

var nocolor = map[string]string{"CALCO_COLOR": "false"}

func TestRunExecute(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		out    string
		status int
	}{
		{"add", []string{"run", "-x", "2+3"}, "5\n", exitOK},
		{"empty", []string{"run", "-x", ""}, "0\n", exitOK},
		{"blank", []string{"run", "-x", "  "}, "0\n", exitOK},
		{"long-flag", []string{"run", "-execute", "2(3+4)"}, "14\n", exitOK},
		{"neg", []string{"run", "-x", "-5"}, "-5\n", exitOK},
		{"neg-mul", []string{"run", "-x", "-2*3"}, "-6\n", exitOK},
		{"pi", []string{"run", "-x", "pi"}, "3.141592653589793\n", exitOK},
		{"sum", []string{"run", "-x", "2+3 4"}, "9\n", exitOK},
		{"fraction", []string{"run", "-x", "1/4"}, "0.25\n", exitOK},
		{"div0", []string{"run", "-x", "1/0"}, "ERROR! Cannot divide a number by zero\n", exitFail},
		{"echo", []string{"run", "-echo", "-x", "2(3+4)"}, "2 * 3 + 4\n14\n", exitOK},
		{"lines", []string{"run", "-lines", "-x", "2+3\n\n4\n"}, "5\n4\n", exitOK},
		{"lines-fail", []string{"run", "-lines", "-x", "1/0\n4"}, "ERROR! Cannot divide a number by zero\n4\n", exitFail},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(memfs.New(), nocolor)
			status := h.main(c.args)
			assert.Equal(t, c.status, status, "stderr: %s", h.err.String())
			assert.Equal(t, c.out, h.out.String())
		})
	}
}

func TestRunSyntaxError(t *testing.T) {
	h := newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitFail, h.main([]string{"run", "-x", "1 + $"}))
	assert.True(t, strings.HasPrefix(h.out.String(), "ERROR! 5: "), h.out.String())
}

func TestRunColor(t *testing.T) {
	h := newHarness(memfs.New(), nil)
	assert.Equal(t, exitFail, h.main([]string{"run", "-x", "1/0"}))
	assert.Equal(t, "\x1b[31mERROR!\x1b[0m Cannot divide a number by zero\n", h.out.String())
}

func TestRunFile(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/work/sums.calc", []byte("2+3\n4\n"), 0o644))
	require.NoError(t, util.WriteFile(fsys, "/abs.calc", []byte("10-2-3"), 0o644))

	cases := []struct {
		name string
		args []string
		out  string
	}{
		{"relative", []string{"run", "-f", "sums.calc"}, "9\n"},
		{"absolute", []string{"run", "-f", "/abs.calc"}, "5\n"},
		{"lines", []string{"run", "-lines", "-f", "sums.calc"}, "5\n4\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(fsys, nocolor)
			assert.Equal(t, exitOK, h.main(c.args), "stderr: %s", h.err.String())
			assert.Equal(t, c.out, h.out.String())
		})
	}
}

func TestRunFileErrors(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/work/bad.calc", []byte("1\n2 $"), 0o644))

	h := newHarness(fsys, nocolor)
	assert.Equal(t, exitFail, h.main([]string{"run", "-f", "bad.calc"}))
	assert.True(t, strings.HasPrefix(h.out.String(), "ERROR! bad.calc:2:3: "), h.out.String())

	h = newHarness(fsys, nocolor)
	assert.Equal(t, exitFail, h.main([]string{"run", "-f", "missing.calc"}))
	assert.Empty(t, h.out.String())
	assert.NotEmpty(t, h.err.String())
}

func TestRunParseTree(t *testing.T) {
	h := newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitOK, h.main([]string{"run", "-parse-tree", "-x", "2 3"}))
	assert.Contains(t, h.out.String(), "Program{")
	assert.Contains(t, h.out.String(), "Juxt")
	assert.True(t, strings.HasSuffix(h.out.String(), "\n6\n"), h.out.String())
}

func TestTokens(t *testing.T) {
	h := newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitOK, h.main([]string{"tokens", "-x", "2x3"}))
	assert.Equal(t, "Number:2@1\nIdent:x@2\nNumber:3@3\n", h.out.String())

	h = newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitFail, h.main([]string{"tokens", "-x", "1 $"}))
	assert.True(t, strings.HasPrefix(h.out.String(), "Number:1@1\nERROR! "), h.out.String())
}

func TestGrammarAndVersion(t *testing.T) {
	h := newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitOK, h.main([]string{"grammar"}))
	assert.Contains(t, h.out.String(), "BinaryExpr")

	h = newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitOK, h.main([]string{"version"}))
	assert.Equal(t, version+"\n", h.out.String())
}

func TestUsageErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"unknown", []string{"frobnicate"}},
		{"run-empty", []string{"run"}},
		{"run-both", []string{"run", "-x", "1", "-f", "a.calc"}},
		{"run-both-empty", []string{"run", "-x", "", "-f", "a.calc"}},
		{"bad-flag", []string{"-nope", "run"}},
		{"bad-level", []string{"-log-level", "loud", "run", "-x", "1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(memfs.New(), nocolor)
			assert.Equal(t, exitUsage, h.main(c.args))
			assert.NotEmpty(t, h.err.String())
		})
	}
}

func TestConfigFile(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/work/calco.yaml", []byte("color: false\n"), 0o644))

	h := newHarness(fsys, nil)
	assert.Equal(t, exitFail, h.main([]string{"run", "-x", "1/0"}))
	assert.Equal(t, "ERROR! Cannot divide a number by zero\n", h.out.String())

	require.NoError(t, util.WriteFile(fsys, "/other.yaml", []byte("color: [\n"), 0o644))
	h = newHarness(fsys, nil)
	assert.Equal(t, exitUsage, h.main([]string{"-config", "/other.yaml", "run", "-x", "1"}))
}

func TestDebugLog(t *testing.T) {
	h := newHarness(memfs.New(), nocolor)
	assert.Equal(t, exitOK, h.main([]string{"-log-level", "debug", "-log-format", "json", "run", "-x", "2+3"}))
	assert.Equal(t, "5\n", h.out.String())

	lines := strings.Split(strings.TrimSpace(h.err.String()), "\n")
	require.NotEmpty(t, lines)
	var run string
	msgs := make([]string, 0, len(lines))
	for _, l := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &rec), l)
		msgs = append(msgs, rec["msg"].(string))
		id, _ := rec["run"].(string)
		if run == "" {
			run = id
		}
		assert.Equal(t, run, id, "all records of one run share its id")
	}
	assert.NotEmpty(t, run)
	assert.Equal(t, []string{"parsing", "parsed", "evaluated"}, msgs)
}
