package printer

import (
	"bytes"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Job builds an ESC/POS byte stream for thermal printers.
type Job struct {
	buf bytes.Buffer
}

// NewJob creates a job that starts with the ESC @ (initialize printer) command.
func NewJob() *Job {
	j := &Job{}
	j.buf.Write([]byte{ESC, '@'})
	return j
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (j *Job) SetAlign(align int) *Job {
	j.buf.Write([]byte{ESC, 'a', byte(align)})
	return j
}

// Line writes s followed by a line feed.
func (j *Job) Line(s string) *Job {
	j.buf.WriteString(s)
	j.buf.WriteByte(LF)
	return j
}

// FeedLines sends n line feeds.
func (j *Job) FeedLines(n int) *Job {
	for i := 0; i < n; i++ {
		j.buf.WriteByte(LF)
	}
	return j
}

// PartialCut sends the partial cut command.
func (j *Job) PartialCut() *Job {
	j.buf.Write([]byte{GS, 'V', 0x01})
	return j
}

// Bytes returns the accumulated ESC/POS byte stream.
func (j *Job) Bytes() []byte {
	return j.buf.Bytes()
}

// EncodeText wraps pre-formatted plain text in a print job: left aligned,
// one printer line per text line, then a short feed and a partial cut.
// The text is already laid out, so no printer-side centering is used.
func EncodeText(text string) []byte {
	j := NewJob().SetAlign(AlignLeft)
	for _, line := range strings.Split(text, "\n") {
		j.Line(line)
	}
	return j.FeedLines(3).PartialCut().Bytes()
}
