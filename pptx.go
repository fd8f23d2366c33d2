package merkdown

import (
	"archive/zip"
	"bytes"
	"io"
	"os"

	"github.com/samber/oops"
)

// PPTXLayout indexes the slide layouts of a deck. The order matches the stock
// PowerPoint template.
type PPTXLayout int

const (
	LayoutTitle PPTXLayout = iota
	LayoutBullets
	LayoutSection
)

// maxParagraphLevel is the deepest outline level PowerPoint supports.
const maxParagraphLevel = 8

type PPTXParagraph struct {
	Text  string
	Level int
}

// PPTXTextFrame is the text body of a placeholder. A new frame always holds
// one empty paragraph.
type PPTXTextFrame struct {
	Paragraphs []*PPTXParagraph
}

func newTextFrame() *PPTXTextFrame {
	return &PPTXTextFrame{Paragraphs: []*PPTXParagraph{{}}}
}

func (tf *PPTXTextFrame) FirstParagraph() *PPTXParagraph {
	return tf.Paragraphs[0]
}

func (tf *PPTXTextFrame) AddParagraph() *PPTXParagraph {
	p := &PPTXParagraph{}
	tf.Paragraphs = append(tf.Paragraphs, p)
	return p
}

// PPTXSlide is a slide instantiated from one of the deck layouts. Body is nil
// for layouts without a body placeholder.
type PPTXSlide struct {
	Layout PPTXLayout
	Title  string
	Body   *PPTXTextFrame
}

// PPTXDeck is an in-memory PowerPoint package.
type PPTXDeck struct {
	Title   string
	Creator string
	Slides  []*PPTXSlide
}

func NewPPTXDeck() *PPTXDeck {
	return &PPTXDeck{}
}

// AddSlide appends a slide using layout. Its placeholders start out empty.
func (d *PPTXDeck) AddSlide(layout PPTXLayout) *PPTXSlide {
	s := &PPTXSlide{Layout: layout}
	if pptxLayouts[layout].BodyPh != "" {
		s.Body = newTextFrame()
	}
	d.Slides = append(d.Slides, s)
	return s
}

// WriteTo writes the deck as a zip package.
func (d *PPTXDeck) WriteTo(w io.Writer) (int64, error) {
	parts, err := d.parts()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
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

// Save writes the deck to path.
func (d *PPTXDeck) Save(path string) error {
	return savePackage(path, d)
}

// ToPPTX converts the presentation into a PowerPoint deck and saves it to
// outfile unless outfile is empty. The deck is returned either way.
func ToPPTX(pres *Presentation, outfile string) (*PPTXDeck, error) {
	deck := NewPPTXDeck()
	deck.Title = pres.Title
	deck.Creator = pres.Author

	title := deck.AddSlide(LayoutTitle)
	title.Title = pres.Title
	if pres.Author != "" {
		title.Body.FirstParagraph().Text = pres.Author
	}

	for _, s := range pres.Slides {
		if s.IsSection() {
			deck.AddSlide(LayoutSection).Title = s.Title
			continue
		}
		slide := deck.AddSlide(LayoutBullets)
		slide.Title = s.Title
		p := slide.Body.FirstParagraph()
		for i, b := range s.Bullets {
			if i > 0 {
				p = slide.Body.AddParagraph()
			}
			p.Text = b.Text
			p.Level = b.Level
		}
	}

	if outfile != "" {
		if err := deck.Save(outfile); err != nil {
			return deck, err
		}
	}
	return deck, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// savePackage renders the package fully before creating path so a failed
// render leaves no truncated file behind.
func savePackage(path string, pkg io.WriterTo) error {
	buf := &bytes.Buffer{}
	if _, err := pkg.WriteTo(buf); err != nil {
		return oops.With("path", path).Wrapf(err, "encoding package")
	}
	f, err := os.Create(path)
	if err != nil {
		return oops.Code("OUTPUT_UNWRITABLE").With("path", path).Wrapf(err, "creating %q", path)
	}
	defer f.Close()
	if _, err := buf.WriteTo(f); err != nil {
		return oops.Code("OUTPUT_UNWRITABLE").With("path", path).Wrapf(err, "writing %q", path)
	}
	return f.Close()
}
