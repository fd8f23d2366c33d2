package merkdown

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gobuffalo/packr/v2"
	"github.com/samber/oops"
)

// DefaultTeXTemplate is the name of the built-in beamer template.
const DefaultTeXTemplate = "beamer.tex"

var templateBox = packr.New("templates", "./templates")

// LoadTeXTemplate returns the contents of the template at path. An empty path
// selects the built-in beamer template.
func LoadTeXTemplate(path string) (string, error) {
	if path == "" {
		tmpl, err := templateBox.FindString(DefaultTeXTemplate)
		if err != nil {
			return "", oops.
				Code("TEMPLATE_UNREADABLE").
				With("template", DefaultTeXTemplate).
				Wrapf(err, "loading built-in template")
		}
		return tmpl, nil
	}
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return "", oops.
			Code("TEMPLATE_UNREADABLE").
			With("path", path).
			Wrapf(err, "reading template %q", path)
	}
	return string(buf), nil
}

// EmitTeXTemplate writes the built-in template to destDir/template.tex so it
// can be customised and passed back with --template.
func EmitTeXTemplate(destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0777); err != nil {
		return "", oops.Code("OUTPUT_UNWRITABLE").With("path", destDir).Wrap(err)
	}
	data, err := templateBox.Find(DefaultTeXTemplate)
	if err != nil {
		return "", oops.Code("TEMPLATE_UNREADABLE").Wrapf(err, "loading built-in template")
	}
	destPath := filepath.Join(destDir, "template.tex")
	if err := writeFile(destPath, data); err != nil {
		return "", err
	}
	return destPath, nil
}

func writeFile(path string, data []byte) error {
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return oops.
			Code("OUTPUT_UNWRITABLE").
			With("path", path).
			Wrapf(err, "writing %q", path)
	}
	return nil
}
