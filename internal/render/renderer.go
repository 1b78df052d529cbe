package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/theme"
)

const (
	// DefaultWidth and DefaultHeight give a 4:5 portrait card.
	DefaultWidth  = 1080
	DefaultHeight = 1350

	// baseWidth is the card width the template sizes are expressed against.
	baseWidth = 360.0

	maxDimension = 4096
)

type fontKey struct {
	family Family
	bold   bool
	italic bool
}

var fontData = map[fontKey][]byte{
	{FamilySans, false, false}: goregular.TTF,
	{FamilySans, true, false}:  gobold.TTF,
	{FamilySans, false, true}:  goitalic.TTF,
	{FamilySans, true, true}:   gobolditalic.TTF,
	{FamilyMono, false, false}: gomono.TTF,
	{FamilyMono, true, false}:  gomonobold.TTF,
	{FamilyMono, false, true}:  gomonoitalic.TTF,
	{FamilyMono, true, true}:   gomonobolditalic.TTF,
}

// Config sizes the rendered card. Zero values use the defaults.
type Config struct {
	Width  int
	Height int
}

// Renderer draws quote cards. It is safe for concurrent use: parsed fonts
// are shared and faces are created per call.
type Renderer struct {
	width  int
	height int
	fonts  map[fontKey]*opentype.Font
}

// NewRenderer parses the bundled Go fonts.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}

	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}

	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, fmt.Errorf("card size %dx%d exceeds %d", cfg.Width, cfg.Height, maxDimension)
	}

	fonts := make(map[fontKey]*opentype.Font, len(fontData))
	for key, data := range fontData {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font: %w", err)
		}

		fonts[key] = f
	}

	return &Renderer{width: cfg.Width, height: cfg.Height, fonts: fonts}, nil
}

// Size returns the card dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws q with the named template.
func (r *Renderer) Render(q *domain.Quote, template string) (image.Image, error) {
	style, err := Lookup(template)
	if err != nil {
		return nil, err
	}

	if q == nil || strings.TrimSpace(q.Content) == "" {
		return nil, domain.NewValidationError("quote", "quote content is required")
	}

	scale := float64(r.width) / baseWidth
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	r.paintBackground(img, style, q.Category)

	pad := int(math.Round(style.Padding * scale))
	box := img.Bounds().Inset(pad)

	if style.InnerBorder > 0 {
		border := max(1, int(math.Round(style.InnerBorder*scale)))
		drawFrame(img, box, border, theme.MustHex(style.InnerBorderColor))
		box = box.Inset(border + int(math.Round(20*scale)))
	}

	textFace, err := r.face(style.Text, scale)
	if err != nil {
		return nil, err
	}
	defer textFace.Close()

	authorFace, err := r.face(style.Author, scale)
	if err != nil {
		return nil, err
	}
	defer authorFace.Close()

	content := `"` + q.Content + `"`
	if style.Text.Uppercase {
		content = strings.ToUpper(content)
	}

	author := style.AuthorPrefix + q.Author

	maxWidth := fixed.I(box.Dx())
	textLines := Wrap(textFace, content, maxWidth, spacing(style.Text, scale))
	authorLines := Wrap(authorFace, author, maxWidth, spacing(style.Author, scale))

	textLH := lineHeight(style.Text, scale)
	authorLH := lineHeight(style.Author, scale)
	gap := int(math.Round(style.Author.MarginTop * scale))
	total := len(textLines)*textLH + gap + len(authorLines)*authorLH

	y := box.Min.Y + (box.Dy()-total)/2
	for _, line := range textLines {
		drawLine(img, textFace, line, style.Text, scale, box, y, textLH)
		y += textLH
	}

	y += gap
	for _, line := range authorLines {
		drawLine(img, authorFace, line, style.Author, scale, box, y, authorLH)
		y += authorLH
	}

	return img, nil
}

// RenderPNG renders q and encodes it as PNG to w.
func (r *Renderer) RenderPNG(w io.Writer, q *domain.Quote, template string) error {
	img, err := r.Render(q, template)
	if err != nil {
		return err
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	return nil
}

func (r *Renderer) face(ts TextStyle, scale float64) (font.Face, error) {
	f := r.fonts[fontKey{family: ts.Family, bold: ts.Bold, italic: ts.Italic}]

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    ts.Size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}

	return face, nil
}

func (r *Renderer) paintBackground(img *image.RGBA, style Style, category string) {
	if !style.CategoryBackdrop {
		draw.Draw(img, img.Bounds(), image.NewUniform(theme.MustHex(style.Background)), image.Point{}, draw.Src)
		return
	}

	draw.Draw(img, img.Bounds(), image.NewUniform(theme.MustHex(categoryTint(category))), image.Point{}, draw.Src)

	// Transparent at the top to 80% black at the bottom.
	h := img.Bounds().Dy()
	for y := range h {
		a := uint8(math.Round(0.8 * 255 * float64(y) / float64(max(1, h-1))))
		row := image.Rect(0, y, img.Bounds().Dx(), y+1)
		draw.Draw(img, row, image.NewUniform(color.NRGBA{A: a}), image.Point{}, draw.Over)
	}
}

func drawFrame(img *image.RGBA, box image.Rectangle, width int, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+width),
		image.Rect(box.Min.X, box.Max.Y-width, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+width, box.Max.Y),
		image.Rect(box.Max.X-width, box.Min.Y, box.Max.X, box.Max.Y),
	}

	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

func drawLine(img *image.RGBA, face font.Face, line string, ts TextStyle, scale float64, box image.Rectangle, top, lh int) {
	sp := spacing(ts, scale)
	width := Measure(face, line, sp).Ceil()

	x := box.Min.X + (box.Dx()-width)/2
	switch ts.Align {
	case AlignLeft:
		x = box.Min.X
	case AlignRight:
		x = box.Max.X - width
	case AlignCenter:
	}

	m := face.Metrics()
	baseline := top + (lh-(m.Ascent+m.Descent).Ceil())/2 + m.Ascent.Ceil()

	if ts.Glow != "" {
		glow := theme.MustHex(ts.Glow)
		glow.A /= 3

		off := max(1, int(math.Round(2*scale)))
		for _, d := range []image.Point{{-off, 0}, {off, 0}, {0, -off}, {0, off}} {
			drawText(img, face, line, glow, sp, x+d.X, baseline+d.Y)
		}
	}

	c := theme.MustHex(ts.Color)
	if ts.Opacity > 0 && ts.Opacity < 1 {
		c.A = uint8(math.Round(float64(c.A) * ts.Opacity))
	}

	drawText(img, face, line, c, sp, x, baseline)
}

func drawText(img *image.RGBA, face font.Face, s string, c color.Color, sp fixed.Int26_6, x, baseline int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}

	if sp == 0 {
		d.DrawString(s)
		return
	}

	for _, r := range s {
		d.DrawString(string(r))
		d.Dot.X += sp
	}
}

func spacing(ts TextStyle, scale float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(ts.LetterSpacing * scale * 64))
}

func lineHeight(ts TextStyle, scale float64) int {
	lh := ts.LineHeight
	if lh <= 0 {
		lh = ts.Size * 1.3
	}

	return int(math.Ceil(lh * scale))
}
