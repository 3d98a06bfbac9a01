package sink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Language selects the dialect of a Text sink.
type Language int

const (
	// CLang writes const unsigned char arrays
	CLang Language = iota
	// AsmLang writes .db/.dw directives
	AsmLang
)

func (l Language) comment() string {
	if l == AsmLang {
		return ";"
	}
	return "//"
}

type style struct {
	prefix, suffix string
	base           int
}

var (
	decimal   = style{base: 10}
	hexC      = style{prefix: "0x", base: 16}
	binaryC   = style{prefix: "0b", base: 2}
	hexAsm    = style{prefix: "0", suffix: "h", base: 16}
	binAsm    = style{suffix: "b", base: 2}
	hexDollar = style{prefix: "$", base: 16}
	hexBasic  = style{prefix: "&H", base: 16}
	hexAnd    = style{prefix: "&", base: 16}
	hexSharp  = style{prefix: "#", base: 16}
)

func (l Language) style(d DataFormat) style {
	switch d {
	case Decimal:
		return decimal
	case Hexa, HexaC:
		return hexC
	case BinaryC:
		return binaryC
	}

	if l == CLang {
		if d == BinaryData {
			return binaryC
		}
		return hexC
	}

	switch d {
	case HexaASM:
		return hexAsm
	case HexaPascal:
		return hexDollar
	case HexaBasic:
		return hexBasic
	case HexaAnd:
		return hexAnd
	case HexaSharp:
		return hexSharp
	case BinaryData, BinaryASM:
		return binAsm
	}
	return hexC
}

// format writes v using size bytes worth of digits.
func (s style) format(v, size int) string {
	switch s.base {
	case 2:
		return fmt.Sprintf("%s%0*b%s", s.prefix, size*8, v, s.suffix)
	case 10:
		return fmt.Sprintf("%*d", size*2+1, v)
	}
	return fmt.Sprintf("%s%0*X%s", s.prefix, size*2, v, s.suffix)
}

// Text is a Sink rendering the records as C or assembly source.
type Text struct {
	buf   bytes.Buffer
	lang  Language
	style style
	total int
	first bool
}

// NewText returns an empty Text sink writing in lang with numbers formatted
// as d.
func NewText(lang Language, d DataFormat) *Text {
	return &Text{
		lang:  lang,
		style: lang.style(d),
	}
}

func (t *Text) number8(v byte) string {
	return t.style.format(int(v), 1)
}

func (t *Text) number16(v uint16) string {
	return t.style.format(int(v), 2)
}

func (t *Text) line(comment string, values ...string) {
	t.buf.WriteByte('\t')
	if t.lang == AsmLang {
		t.buf.WriteString(strings.Join(values, ", "))
		if comment != "" {
			t.buf.WriteString(" ; " + comment)
		}
	} else {
		t.buf.WriteString(strings.Join(values, ", ") + ",")
		if comment != "" {
			t.buf.WriteString(" // " + comment)
		}
	}
	t.buf.WriteByte('\n')
}

func (t *Text) directive(d string, values ...string) []string {
	if t.lang == AsmLang && len(values) > 0 {
		values[0] = d + " " + values[0]
	}
	return values
}

func (t *Text) commentf(format string, a ...interface{}) {
	fmt.Fprintf(&t.buf, "%s "+format+"\n", append([]interface{}{t.lang.comment()}, a...)...)
}

func yesNo(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func hex(h Header) string {
	if !h.Transparent {
		return "none"
	}
	return colorful.Color{
		R: float64(h.Key.R) / 255.0,
		G: float64(h.Key.G) / 255.0,
		B: float64(h.Key.B) / 255.0,
	}.Hex()
}

// WriteHeader writes the optional banner and copyright followed by the
// generation parameters, all as comments.
func (t *Text) WriteHeader(h Header) {
	if h.Title {
		rule := strings.Repeat("_", 40)
		t.commentf("%s", rule)
		t.commentf("  MSXimg %s", h.Version)
		t.commentf("  Sprite and tile table generator")
		t.commentf("%s", rule)
	}
	for _, l := range h.Copyright {
		t.commentf("%s", strings.TrimRight(l, "\r\n"))
	}
	t.commentf("Sprite table generated by MSXimg (%s)", h.Version)
	t.commentf("- Input file:     %s", h.Input)
	t.commentf("- Start position: %d, %d", h.Pos.X, h.Pos.Y)
	t.commentf("- Sprite size:    %d, %d (gap: %d, %d)", h.Size.X, h.Size.Y, h.Gap.X, h.Gap.Y)
	t.commentf("- Sprite count:   %d, %d", h.Num.X, h.Num.Y)
	t.commentf("- Color count:    %d (Transparent: %s)", 1<<uint(h.BPC), hex(h))
	t.commentf("- Compressor:     %s", h.Compressor)
	t.commentf("- Skip empty:     %s", yesNo(h.SkipEmpty))
}

// WriteTableBegin opens the table name, preceded by comment.
func (t *Text) WriteTableBegin(name, comment string) {
	t.buf.WriteByte('\n')
	if comment != "" {
		t.commentf("%s", comment)
	}
	if t.lang == AsmLang {
		fmt.Fprintf(&t.buf, "%s:\n", name)
		return
	}
	fmt.Fprintf(&t.buf, "const unsigned char %s[] =\n{\n", name)
}

// WriteSpriteHeader writes the number and offset of the following sprite.
func (t *Text) WriteSpriteHeader(index int) {
	t.commentf("Sprite[%d] (offset:%d)", index, t.total)
}

func (t *Text) Write1ByteLine(a byte, comment string) {
	t.line(comment, t.directive(".db", t.number8(a))...)
	t.total++
}

func (t *Text) Write2BytesLine(a, b byte, comment string) {
	t.line(comment, t.directive(".db", t.number8(a), t.number8(b))...)
	t.total += 2
}

func (t *Text) Write4BytesLine(a, b, c, d byte, comment string) {
	t.line(comment, t.directive(".db", t.number8(a), t.number8(b), t.number8(c), t.number8(d))...)
	t.total += 4
}

// Write1WordLine writes a word. C tables are byte arrays so the word is
// split into its low and high bytes.
func (t *Text) Write1WordLine(a uint16, comment string) {
	if t.lang == AsmLang {
		t.line(comment, t.directive(".dw", t.number16(a))...)
	} else {
		t.line(comment, t.number8(byte(a)), t.number8(byte(a>>8)))
	}
	t.total += 2
}

func (t *Text) Write2WordsLine(a, b uint16, comment string) {
	if t.lang == AsmLang {
		t.line(comment, t.directive(".dw", t.number16(a), t.number16(b))...)
	} else {
		t.line(comment, t.number8(byte(a)), t.number8(byte(a>>8)), t.number8(byte(b)), t.number8(byte(b>>8)))
	}
	t.total += 4
}

func (t *Text) WriteLineBegin() {
	t.buf.WriteByte('\t')
	if t.lang == AsmLang {
		t.buf.WriteString(".db ")
	}
	t.first = true
}

func (t *Text) data(v string) {
	if t.lang == AsmLang {
		if !t.first {
			t.buf.WriteString(", ")
		}
		t.buf.WriteString(v)
	} else {
		t.buf.WriteString(v + ", ")
	}
	t.first = false
	t.total++
}

func (t *Text) Write1ByteData(a byte) {
	t.data(t.number8(a))
}

// Write8BitsData writes a byte of eight 1 bit pixels. In C the pixels are
// drawn in a trailing comment.
func (t *Text) Write8BitsData(a byte) {
	if t.lang == AsmLang {
		t.data(t.number8(a))
		return
	}

	var pic [8]byte
	for i := range pic {
		pic[i] = '.'
		if a&(0x80>>uint(i)) != 0 {
			pic[i] = '#'
		}
	}
	t.data(t.number8(a))
	fmt.Fprintf(&t.buf, "/* %s */ ", pic[:])
}

func (t *Text) WriteLineEnd() {
	t.buf.WriteByte('\n')
}

// WriteTableEnd closes the current table, followed by comment.
func (t *Text) WriteTableEnd(comment string) {
	if t.lang == CLang {
		t.buf.WriteString("};\n")
	}
	if comment != "" {
		t.commentf("%s", comment)
	}
}

// WriteDefine writes a named constant.
func (t *Text) WriteDefine(name string, value int) {
	if t.lang == AsmLang {
		fmt.Fprintf(&t.buf, "%s = %d\n", name, value)
		return
	}
	fmt.Fprintf(&t.buf, "#define %s %d\n", name, value)
}

// TotalBytes returns the number of data bytes written so far.
func (t *Text) TotalBytes() int {
	return t.total
}

// String returns the source text written so far.
func (t *Text) String() string {
	return t.buf.String()
}

// WriteTo writes the accumulated source text to w.
func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.buf.Bytes())
	return int64(n), err
}
