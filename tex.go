package merkdown

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/samber/oops"
)

// palette holds the beamer color names the background rotates through. The
// built-in template defines all of them.
var palette = []string{"mdred", "mdblue", "mdgreen", "mdyellow", "mdviolet"}

// Palette returns a copy of the background color names.
func Palette() []string {
	return append([]string(nil), palette...)
}

var texEscaper = strings.NewReplacer(
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"#", `\#`,
	"{", `\{`,
	"}", `\}`,
)

// TeXEscape prefixes every character that is reserved in LaTeX with a backslash.
func TeXEscape(text string) string {
	return texEscaper.Replace(text)
}

type texConfig struct {
	rnd *rand.Rand
}

// TeXOption customises ToTeX.
type TeXOption func(*texConfig)

// WithRand sets the random source used for the background color rotation.
func WithRand(rnd *rand.Rand) TeXOption {
	return func(c *texConfig) {
		c.rnd = rnd
	}
}

type texDocument struct {
	Slides     string
	Title      string
	Author     string
	Aspect     string
	TitleColor string
}

// ToTeX renders the presentation into the beamer template at templatePath
// (the built-in template when empty). aspect is one of 4:3, 16:9 or 16:10, the
// separator is optional. The output is written to outfile if it is set.
func ToTeX(pres *Presentation, templatePath, aspect, outfile string, opts ...TeXOption) (string, error) {
	cfg := &texConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rnd == nil {
		cfg.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tmplStr, err := LoadTeXTemplate(templatePath)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("tex").Delims("[[", "]]").Parse(tmplStr)
	if err != nil {
		return "", oops.
			Code("TEMPLATE_INVALID").
			With("path", templatePath).
			Wrapf(err, "parsing template")
	}

	rotation := newColorRotation(cfg.rnd)
	titleColor := rotation.current

	var fragments []string
	for _, s := range pres.Slides {
		fragments = append(fragments, texSlide(s, rotation.next()))
	}

	doc := texDocument{
		Slides:     strings.Join(fragments, "\n"),
		Title:      TeXEscape(pres.Title),
		Author:     TeXEscape(pres.Author),
		Aspect:     strings.Replace(aspect, ":", "", -1),
		TitleColor: titleColor,
	}
	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, doc); err != nil {
		return "", oops.Code("TEMPLATE_INVALID").With("path", templatePath).Wrapf(err, "rendering template")
	}

	if outfile != "" {
		if err := writeFile(outfile, buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// colorRotation picks palette colors at random without repeating the
// previous pick.
type colorRotation struct {
	rnd     *rand.Rand
	current string
}

func newColorRotation(rnd *rand.Rand) *colorRotation {
	return &colorRotation{
		rnd:     rnd,
		current: palette[rnd.Intn(len(palette))],
	}
}

func (c *colorRotation) next() string {
	candidates := make([]string, 0, len(palette)-1)
	for _, color := range palette {
		if color != c.current {
			candidates = append(candidates, color)
		}
	}
	c.current = candidates[c.rnd.Intn(len(candidates))]
	return c.current
}

func indent(text string, level int) string {
	return strings.Repeat("\t", level) + text
}

func texSlide(s *Slide, color string) string {
	lines := []string{
		fmt.Sprintf(`\setbeamercolor{background canvas}{bg=%s}`, color),
		fmt.Sprintf(`\begin{frame}{%s}`, TeXEscape(s.Title)),
	}
	if s.IsSection() {
		return strings.Join(append(lines, "\\end{frame}\n"), "\n")
	}

	lines = append(lines, indent(`\begin{itemize}`, 1))
	level := 0
	for _, b := range s.Bullets {
		for level < b.Level {
			lines = append(lines, indent(`\begin{itemize}`, level+2))
			level++
		}
		for level > b.Level {
			lines = append(lines, indent(`\end{itemize}`, level+1))
			level--
		}
		lines = append(lines, indent(`\item `+TeXEscape(b.Text), level+2))
	}
	for ; level >= 0; level-- {
		lines = append(lines, indent(`\end{itemize}`, level+1))
	}
	lines = append(lines, "\\end{frame}\n")
	return strings.Join(lines, "\n")
}
