package main

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/connctd/merkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

const talk = "# My Talk\nAuthor: Jane Doe\n# Intro\n- point one\n- point two\n    - nested point\n# Conclusion\n"

func TestMain(m *testing.M) {
	cli.OsExiter = func(int) {}
	cli.ErrWriter = ioutil.Discard
	os.Exit(m.Run())
}

func setup(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	input = filepath.Join(dir, "talk.md")
	require.NoError(t, ioutil.WriteFile(input, []byte(talk), 0644))
	return dir, input
}

func run(args ...string) error {
	return runMain(append([]string{"merkdown"}, args...))
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok, "expected an exit coder, got %v", err)
	assert.Equal(t, code, exitErr.ExitCode())
}

func TestConvertDefaultsToTeX(t *testing.T) {
	dir, input := setup(t)
	out := filepath.Join(dir, "out")

	require.NoError(t, run("-o", out, input))

	tex, err := ioutil.ReadFile(out + ".tex")
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\title{My Talk}`)
	assert.Contains(t, string(tex), "aspectratio=43")
	assert.NoFileExists(t, out+".pptx")
	assert.NoFileExists(t, out+".odp")
}

func TestConvertAllFormats(t *testing.T) {
	dir, input := setup(t)
	out := filepath.Join(dir, "deck")

	require.NoError(t, run("convert", "-o", out, "-f", "pptx", "-f", "odp,tex", "--aspect", "16:9", input))

	for _, ext := range []string{".pptx", ".odp", ".tex"} {
		assert.FileExists(t, out+ext)
	}
	tex, err := ioutil.ReadFile(out + ".tex")
	require.NoError(t, err)
	assert.Contains(t, string(tex), "aspectratio=169")
}

func TestConvertUsageErrors(t *testing.T) {
	dir, input := setup(t)
	out := filepath.Join(dir, "out")

	requireExitCode(t, run("-o", out, "-f", "pdf", input), usageExitCode)
	requireExitCode(t, run("-o", out, "--aspect", "21:9", input), usageExitCode)
	requireExitCode(t, run("-o", out), usageExitCode)
	requireExitCode(t, run("-o", out, "--bogus", input), usageExitCode)
	requireExitCode(t, run("convert", "--bogus", input), usageExitCode)
	requireExitCode(t, run("-o", out, input, input), usageExitCode)
	assert.NoFileExists(t, out+".tex")
}

func TestConvertFlagsAfterInput(t *testing.T) {
	dir, input := setup(t)
	out := filepath.Join(dir, "out")

	require.NoError(t, run(input, "-o", out, "-f", "pptx"))
	assert.FileExists(t, out+".pptx")
	assert.NoFileExists(t, out+".tex")
	assert.NoFileExists(t, "out.tex")
}

func TestConvertFormatList(t *testing.T) {
	dir, input := setup(t)
	out := filepath.Join(dir, "deck")

	require.NoError(t, run("-o", out, "-f", "pptx", "odp", input))
	assert.FileExists(t, out+".pptx")
	assert.FileExists(t, out+".odp")
	assert.NoFileExists(t, out+".tex")
}

func TestWithDefaultCommand(t *testing.T) {
	app := newApp()
	for _, tc := range []struct {
		args []string
		want []string
	}{
		{[]string{"merkdown"}, []string{"merkdown", "convert"}},
		{[]string{"merkdown", "talk.md", "-f", "odp"}, []string{"merkdown", "convert", "talk.md", "-f", "odp"}},
		{[]string{"merkdown", "-o", "x", "talk.md"}, []string{"merkdown", "convert", "-o", "x", "talk.md"}},
		{[]string{"merkdown", "watch", "talk.md"}, []string{"merkdown", "watch", "talk.md"}},
		{[]string{"merkdown", "s", "talk.md"}, []string{"merkdown", "s", "talk.md"}},
		{[]string{"merkdown", "--help"}, []string{"merkdown", "--help"}},
		{[]string{"merkdown", "help", "convert"}, []string{"merkdown", "help", "convert"}},
	} {
		assert.Equal(t, tc.want, withDefaultCommand(app, tc.args), "%v", tc.args)
	}
}

func TestConvertParseError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.md")
	require.NoError(t, ioutil.WriteFile(input, []byte("no title here\n"), 0644))

	err := run("-o", filepath.Join(dir, "out"), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merkdown.ErrMalformedDocument))
}

func TestConvertConfigPrecedence(t *testing.T) {
	dir, input := setup(t)
	cfgPath := filepath.Join(dir, "merkdown.yml")
	cfg := "out: " + filepath.Join(dir, "fromconfig") + "\nformats: [odp]\n"
	require.NoError(t, ioutil.WriteFile(cfgPath, []byte(cfg), 0644))

	require.NoError(t, run("--config", cfgPath, input))
	assert.FileExists(t, filepath.Join(dir, "fromconfig.odp"))
	assert.NoFileExists(t, filepath.Join(dir, "fromconfig.tex"))

	require.NoError(t, run("--config", cfgPath, "-o", filepath.Join(dir, "fromflag"), input))
	assert.FileExists(t, filepath.Join(dir, "fromflag.odp"))
}

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run("template", dir))

	tmpl, err := ioutil.ReadFile(filepath.Join(dir, "template.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), "[[ .Slides ]]")
}
