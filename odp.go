package merkdown

import (
	"archive/zip"
	"io"
	"strings"
)

// ODPChartKind selects the page layout of a chart.
type ODPChartKind int

const (
	// TitleChart shows a title and an optional subtitle.
	TitleChart ODPChartKind = iota
	// OutlineChart shows a title above an outline.
	OutlineChart
)

// ODPChart is one page of an OpenDocument presentation.
type ODPChart struct {
	Kind     ODPChartKind
	Title    string
	Subtitle string
	// Outline holds one entry per item. Leading tabs give the nesting depth.
	Outline []string
}

func (c *ODPChart) IsOutline() bool {
	return c.Kind == OutlineChart
}

// ODPDocument is an in-memory OpenDocument presentation.
type ODPDocument struct {
	Title   string
	Creator string
	Charts  []*ODPChart
}

func NewODPDocument() *ODPDocument {
	return &ODPDocument{}
}

func (d *ODPDocument) AddTitleChart(title, subtitle string) *ODPChart {
	c := &ODPChart{Kind: TitleChart, Title: title, Subtitle: subtitle}
	d.Charts = append(d.Charts, c)
	return c
}

func (d *ODPDocument) AddTitledOutlineChart(title string, outline []string) *ODPChart {
	c := &ODPChart{Kind: OutlineChart, Title: title, Outline: outline}
	d.Charts = append(d.Charts, c)
	return c
}

// WriteTo writes the document as an ODF package. The mimetype entry comes
// first and is stored uncompressed.
func (d *ODPDocument) WriteTo(w io.Writer) (int64, error) {
	parts, err := d.parts()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return cw.n, err
	}
	if _, err := io.WriteString(mw, odpMimeType); err != nil {
		return cw.n, err
	}
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return cw.n, err
		}
		if _, err := pw.Write(part.data); err != nil {
			return cw.n, err
		}
	}
	err = zw.Close()
	return cw.n, err
}

func (d *ODPDocument) Save(path string) error {
	return savePackage(path, d)
}

// ToODP converts the presentation into an OpenDocument presentation and
// saves it to outfile unless outfile is empty. The document is returned
// either way.
func ToODP(pres *Presentation, outfile string) (*ODPDocument, error) {
	doc := NewODPDocument()
	doc.Title = pres.Title
	doc.Creator = pres.Author

	doc.AddTitleChart(pres.Title, pres.Author)
	for _, s := range pres.Slides {
		if s.IsSection() {
			doc.AddTitleChart(s.Title, "")
			continue
		}
		outline := make([]string, 0, len(s.Bullets))
		for _, b := range s.Bullets {
			outline = append(outline, indent(b.Text, b.Level))
		}
		doc.AddTitledOutlineChart(s.Title, outline)
	}

	if outfile != "" {
		if err := doc.Save(outfile); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

// outlineXML turns tab indented outline entries into nested text:list
// elements.
func outlineXML(outline []string) string {
	var b strings.Builder
	b.WriteString("<text:list>")
	level := 0
	itemOpen := false
	for _, entry := range outline {
		depth := len(entry) - len(strings.TrimLeft(entry, "\t"))
		text := entry[depth:]
		for level < depth {
			if !itemOpen {
				b.WriteString("<text:list-item>")
			}
			b.WriteString("<text:list>")
			level++
			itemOpen = false
		}
		for level > depth {
			if itemOpen {
				b.WriteString("</text:list-item>")
			}
			b.WriteString("</text:list>")
			level--
			itemOpen = true
		}
		if itemOpen {
			b.WriteString("</text:list-item>")
		}
		b.WriteString("<text:list-item><text:p>")
		b.WriteString(xmlEscape(text))
		b.WriteString("</text:p>")
		itemOpen = true
	}
	for ; level > 0; level-- {
		if itemOpen {
			b.WriteString("</text:list-item>")
		}
		b.WriteString("</text:list>")
		itemOpen = true
	}
	if itemOpen {
		b.WriteString("</text:list-item>")
	}
	b.WriteString("</text:list>")
	return b.String()
}
