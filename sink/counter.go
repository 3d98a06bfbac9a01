package sink

import "io"

// Counter is a Sink that only counts bytes. It is used to measure the size
// of a table without producing it.
type Counter struct {
	total int
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) WriteHeader(Header) {}
func (c *Counter) WriteTableBegin(string, string) {}
func (c *Counter) WriteSpriteHeader(int) {}
func (c *Counter) Write1ByteLine(byte, string) { c.total++ }
func (c *Counter) Write2BytesLine(byte, byte, string) { c.total += 2 }
func (c *Counter) Write4BytesLine(_, _, _, _ byte, _ string) { c.total += 4 }
func (c *Counter) Write1WordLine(uint16, string) { c.total += 2 }
func (c *Counter) Write2WordsLine(uint16, uint16, string) { c.total += 4 }
func (c *Counter) WriteLineBegin() {}
func (c *Counter) Write1ByteData(byte) { c.total++ }
func (c *Counter) Write8BitsData(byte) { c.total++ }
func (c *Counter) WriteLineEnd() {}
func (c *Counter) WriteTableEnd(string) {}
func (c *Counter) WriteDefine(string, int) {}

// TotalBytes returns the number of bytes counted so far.
func (c *Counter) TotalBytes() int {
	return c.total
}

// WriteTo writes nothing.
func (c *Counter) WriteTo(io.Writer) (int64, error) {
	return 0, nil
}
