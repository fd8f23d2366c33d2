package merkdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	blackfriday "gopkg.in/russross/blackfriday.v2"
)

var Version = "undefined"

const markdownExtensions = blackfriday.NoIntraEmphasis | blackfriday.Strikethrough |
	blackfriday.SpaceHeadings | blackfriday.BackslashLineBreak

var mainTmpl = `[[define "main" ]] [[ template "base" . ]] [[ end ]]`

var baseTmpl = `
[[ define "base" ]]
<html>
	<head>
		<meta charset="utf-8">
		<title>[[ .Title ]]</title>
		<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@3.8.0/css/reveal.css">
		<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@3.8.0/css/theme/white.css">
	</head>
	<body>
		<div class="reveal">
			<div class="slides">
				<section id="title" class="title">
					<h1>[[ .Title ]]</h1>
					[[ if .Author ]]<p>[[ .Author ]]</p>[[ end ]]
				</section>
				[[ range .Slides ]]
					[[ template "slide" . ]]
				[[ end ]]
			</div>
		</div>
		[[ block "js" . ]]
		<script src="https://cdn.jsdelivr.net/npm/reveal.js@3.8.0/js/reveal.js"></script>
		<script>
			Reveal.initialize({ hash: true });
			(function() {
				var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/livereload");
				ws.onmessage = function(evt) {
					if (evt.data === "Reload") {
						location.reload();
					}
				};
			})();
		</script>
		[[ end ]]
	</body>
</html>
[[ end ]]
`

var slideTmplHTML = `
[[ define "slide" ]]
<section id="[[ .SectionID ]]" class="[[ if .Section ]]chapter[[ else ]]slide[[ end ]]">
[[ .Content ]]
</section>
[[ end ]]
`

type htmlSlide struct {
	SectionID string
	Section   bool
	Content   template.HTML
}

type htmlDeck struct {
	Title  string
	Author string
	Slides []htmlSlide
}

func DefaultRenderer() *template.Template {
	var err error
	tmpl := template.New("main")
	tmpl.Delims("[[", "]]")
	for _, tmplStr := range []string{mainTmpl, baseTmpl, slideTmplHTML} {
		tmpl, err = tmpl.Parse(tmplStr)
		if err != nil {
			panic(err)
		}
	}
	return tmpl
}

func generateSectionID(index int, title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	id = strings.Join(strings.Fields(id), "_")
	return fmt.Sprintf("s%d-%s", index+1, id)
}

// slideMarkdown writes the slide back as plain markdown with four spaces per
// nesting level. Text is HTML escaped since the renderer keeps raw HTML.
func slideMarkdown(s *Slide) []byte {
	buf := &bytes.Buffer{}
	level := 1
	if s.IsSection() {
		level = 2
	}
	fmt.Fprintf(buf, "%s %s\n\n", strings.Repeat("#", level), template.HTMLEscapeString(s.Title))
	for _, b := range s.Bullets {
		fmt.Fprintf(buf, "%s- %s\n", strings.Repeat("    ", b.Level), template.HTMLEscapeString(b.Text))
	}
	return buf.Bytes()
}

func renderSlide(index int, s *Slide) htmlSlide {
	out := blackfriday.Run(slideMarkdown(s), blackfriday.WithExtensions(markdownExtensions))
	return htmlSlide{
		SectionID: generateSectionID(index, s.Title),
		Section:   s.IsSection(),
		Content:   template.HTML(out),
	}
}

// RenderHTML renders the presentation as a reveal.js page for previewing.
func RenderHTML(pres *Presentation) ([]byte, error) {
	deck := htmlDeck{
		Title:  pres.Title,
		Author: pres.Author,
	}
	for i, s := range pres.Slides {
		deck.Slides = append(deck.Slides, renderSlide(i, s))
	}

	tmpl := DefaultRenderer()
	buf := &bytes.Buffer{}
	err := tmpl.ExecuteTemplate(buf, "main", deck)
	return buf.Bytes(), err
}
