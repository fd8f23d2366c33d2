package merkdown

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"
)

const (
	tabWidth   = 4
	maxLineLen = 1024 * 1024
)

// Parse reads the markdown file at path and builds a Presentation from it.
func Parse(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.
			Code("INPUT_UNREADABLE").
			With("path", path).
			Wrapf(err, "opening %q", path)
	}
	defer f.Close()

	pres, err := ParseReader(f)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "parsing %q", path)
	}
	return pres, nil
}

// ParseReader builds a Presentation from line oriented markdown. The first
// non-blank line has to be a heading, it becomes the presentation title.
// Every later heading starts a new slide and indented lines starting with
// '-' or '*' become bullets of the current slide.
func ParseReader(r io.Reader) (*Presentation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	var (
		pres      *Presentation
		current   *Slide
		authorSet bool
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if pres == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			title := stripMarkers(line)
			if !isHeading(line) || title == "" {
				return nil, &ParseError{Line: lineNo, Err: ErrMalformedDocument}
			}
			pres = &Presentation{Title: title}
			continue
		}

		switch {
		case isHeading(line):
			current = &Slide{Title: stripMarkers(line)}
			pres.AddSlide(current)
		case !authorSet && isAuthor(line):
			pres.Author = authorName(line)
			authorSet = true
		default:
			level := indentationLevel(line)
			trimmed := strings.TrimLeft(line, "\t ")
			if !isBullet(trimmed) {
				continue
			}
			if current == nil {
				return nil, &ParseError{Line: lineNo, Err: ErrBulletOutsideSlide}
			}
			current.AddBullet(Bullet{Text: stripMarkers(trimmed), Level: level})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.Code("INPUT_UNREADABLE").Wrapf(err, "reading line %d", lineNo+1)
	}
	if pres == nil {
		return nil, ErrMalformedDocument
	}
	return pres, nil
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "#")
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

func isAuthor(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "author:")
}

func authorName(line string) string {
	parts := strings.SplitN(line, ":", 2)
	return strings.TrimSpace(parts[1])
}

// stripMarkers removes heading and list markers plus surrounding indentation
// from the front of line and the line terminator from its end.
func stripMarkers(line string) string {
	line = strings.TrimLeft(line, "#-*\t ")
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// indentationLevel counts leading whitespace in units of tabWidth columns.
// Tabs advance to the next tab stop.
func indentationLevel(line string) int {
	col := 0
loop:
	for _, c := range line {
		switch c {
		case ' ':
			col++
		case '\t':
			col += tabWidth - col%tabWidth
		default:
			break loop
		}
	}
	return col / tabWidth
}
