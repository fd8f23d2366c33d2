package merkdown

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merkdown.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "out: slides\nformats: [pptx, odp]\naspect: \"16:9\"\ntemplate: my.tex\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Out:      "slides",
		Formats:  []string{"pptx", "odp"},
		Aspect:   "16:9",
		Template: "my.tex",
	}, cfg)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "out: talk\n"))
	require.NoError(t, err)
	assert.Equal(t, "talk", cfg.Out)
	assert.Equal(t, []string{"tex"}, cfg.Formats)
	assert.Equal(t, "4:3", cfg.Aspect)
}

func TestLoadConfigDefaultFileMissing(t *testing.T) {
	// the package directory has no merkdown.yml
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":    "colour: red\n",
		"bad aspect":     "aspect: \"21:9\"\n",
		"bad format":     "formats: [pdf]\n",
		"no formats":     "formats: []\n",
		"empty out":      "out: \"\"\n",
		"invalid syntax": "out: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats([]string{"tex,pptx", "ODP", "tex"})
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatTeX, FormatPPTX, FormatODP}, formats)

	_, err = ParseFormats([]string{"pptx", "pdf"})
	require.Error(t, err)

	formats, err = ParseFormats(nil)
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestValidAspect(t *testing.T) {
	assert.True(t, ValidAspect("16:10"))
	assert.False(t, ValidAspect("1610"))
}
