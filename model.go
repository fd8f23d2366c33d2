package merkdown

// Bullet is a single list item of a slide. Level is the nesting depth derived
// from the indentation of the source line.
type Bullet struct {
	Text  string
	Level int
}

type Slide struct {
	Title   string
	Bullets []Bullet
}

// IsSection reports whether the slide has no bullets and is therefore
// rendered as a section divider.
func (s *Slide) IsSection() bool {
	return len(s.Bullets) == 0
}

func (s *Slide) AddBullet(b Bullet) {
	s.Bullets = append(s.Bullets, b)
}

// Presentation is the result of parsing a markdown file. Emitters only read it.
type Presentation struct {
	Title  string
	Author string
	Slides []*Slide
}

func (p *Presentation) AddSlide(s *Slide) {
	p.Slides = append(p.Slides, s)
}
