package merkdown

import (
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() TeXOption {
	return WithRand(rand.New(rand.NewSource(42)))
}

func TestTeXEscape(t *testing.T) {
	assert.Equal(t, `50\% \& \$5`, TeXEscape("50% & $5"))
	assert.Equal(t, `\#1 \{x\}`, TeXEscape("#1 {x}"))
	assert.Equal(t, "plain", TeXEscape("plain"))
}

func TestTeXSlideNesting(t *testing.T) {
	s := &Slide{Title: "Levels", Bullets: []Bullet{
		{Text: "a", Level: 0},
		{Text: "b", Level: 2},
		{Text: "c", Level: 0},
	}}
	expected := strings.Join([]string{
		`\setbeamercolor{background canvas}{bg=mdred}`,
		`\begin{frame}{Levels}`,
		"\t\\begin{itemize}",
		"\t\t\\item a",
		"\t\t\\begin{itemize}",
		"\t\t\t\\begin{itemize}",
		"\t\t\t\t\\item b",
		"\t\t\t\\end{itemize}",
		"\t\t\\end{itemize}",
		"\t\t\\item c",
		"\t\\end{itemize}",
		"\\end{frame}\n",
	}, "\n")
	assert.Equal(t, expected, texSlide(s, "mdred"))
}

func TestTeXSlideClosesTrailingLevels(t *testing.T) {
	s := &Slide{Title: "T", Bullets: []Bullet{{Text: "a"}, {Text: "b", Level: 1}}}
	out := texSlide(s, "mdblue")
	assert.Equal(t, 2, strings.Count(out, `\begin{itemize}`))
	assert.Equal(t, 2, strings.Count(out, `\end{itemize}`))
	assert.True(t, strings.HasSuffix(out, "\t\t\\end{itemize}\n\t\\end{itemize}\n\\end{frame}\n"))
}

func TestToTeXSectionSlides(t *testing.T) {
	pres := &Presentation{Title: "Deck", Slides: []*Slide{{Title: "One"}, {Title: "Two"}, {Title: "Three"}}}
	out, err := ToTeX(pres, "", "4:3", "", seeded())
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, `\begin{frame}{`))
	assert.Equal(t, strings.Count(out, `\begin{itemize}`), strings.Count(out, `\end{itemize}`))
	assert.NotContains(t, out, `\item`)
	assert.Contains(t, out, `aspectratio=43`)
}

func TestToTeXTalk(t *testing.T) {
	pres, err := Parse("./testdata/talk.md")
	require.NoError(t, err)

	outfile := filepath.Join(t.TempDir(), "out.tex")
	out, err := ToTeX(pres, "", "16:9", outfile, seeded())
	require.NoError(t, err)

	assert.Contains(t, out, `\title{My Talk}`)
	assert.Contains(t, out, `\author{Jane Doe}`)
	assert.Contains(t, out, `aspectratio=169`)
	assert.Contains(t, out, "\t\t\\item point one\n\t\t\\item point two\n\t\t\\begin{itemize}\n\t\t\t\\item nested point")
	assert.Contains(t, out, "\\begin{frame}{Conclusion}\n\\end{frame}")

	written, err := ioutil.ReadFile(outfile)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestToTeXEscapesEverything(t *testing.T) {
	pres := &Presentation{
		Title:  "R&D",
		Author: "100% {team}",
		Slides: []*Slide{{Title: "#1", Bullets: []Bullet{{Text: "50% & $5"}}}},
	}
	out, err := ToTeX(pres, "", "4:3", "", seeded())
	require.NoError(t, err)
	assert.Contains(t, out, `\title{R\&D}`)
	assert.Contains(t, out, `\author{100\% \{team\}}`)
	assert.Contains(t, out, `\begin{frame}{\#1}`)
	assert.Contains(t, out, `\item 50\% \& \$5`)
}

func TestToTeXCustomTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, ioutil.WriteFile(tmplPath, []byte("[[ .Title ]]|[[ .Author ]]|[[ .Aspect ]]|[[ .TitleColor ]]|[[ .Slides ]]"), 0644))

	pres := &Presentation{Title: "T", Author: "A"}
	out, err := ToTeX(pres, tmplPath, "16:10", "", seeded())
	require.NoError(t, err)

	parts := strings.Split(out, "|")
	require.Len(t, parts, 5)
	assert.Equal(t, []string{"T", "A", "1610"}, parts[:3])
	assert.Contains(t, Palette(), parts[3])
	assert.Equal(t, "", parts[4])
}

func TestToTeXMissingTemplate(t *testing.T) {
	_, err := ToTeX(&Presentation{Title: "T"}, "./testdata/nope.tex", "4:3", "")
	require.Error(t, err)
}

func TestColorRotationNeverRepeats(t *testing.T) {
	rot := newColorRotation(rand.New(rand.NewSource(7)))
	require.Contains(t, Palette(), rot.current)

	prev := rot.current
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		c := rot.next()
		require.NotEqual(t, prev, c)
		require.Contains(t, Palette(), c)
		seen[c] = true
		prev = c
	}
	assert.Len(t, seen, len(Palette()))
}

func TestPaletteReturnsCopy(t *testing.T) {
	colors := Palette()
	require.Len(t, colors, 5)
	colors[0] = "black"
	assert.Equal(t, "mdred", Palette()[0])

	rot := newColorRotation(rand.New(rand.NewSource(3)))
	for i := 0; i < 50; i++ {
		assert.NotEqual(t, "black", rot.next())
	}
}

func TestToTeXDeterministicWithSeed(t *testing.T) {
	pres, err := Parse("./testdata/budget.md")
	require.NoError(t, err)

	first, err := ToTeX(pres, "", "4:3", "", WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	second, err := ToTeX(pres, "", "4:3", "", WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
