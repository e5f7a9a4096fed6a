// Package transport holds the collaborators kept deliberately outside
// the scheduling core: the byte-stream framing of concatenated
// self-delimited JSON records, the Unix-domain-socket transport that
// delivers event batches, and the line-oriented result sink.
package transport

// FrameScanner extracts concatenated, self-delimited JSON object
// records from a byte stream: scan for the first '{', track brace
// depth while respecting quoted strings and backslash escapes, emit
// the enclosing substring when depth returns to zero. Unbalanced
// partial records remain buffered until more data arrives.
type FrameScanner struct {
	buf []byte
}

// Feed appends newly-read bytes to the scanner's buffer.
func (f *FrameScanner) Feed(data []byte) {
	f.buf = append(f.buf, data...)
}

// Next extracts the first complete object record from the buffer, if
// any. It returns ok=false when no balanced record is yet available;
// the caller should Feed more data and try again.
func (f *FrameScanner) Next() (frame []byte, ok bool) {
	start := -1
	for i, c := range f.buf {
		if c == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	depth := 0
	inStr := false
	esc := false

	for i := start; i < len(f.buf); i++ {
		c := f.buf[i]

		if inStr {
			if esc {
				esc = false
			} else if c == '\\' {
				esc = true
			} else if c == '"' {
				inStr = false
			}
			continue
		}

		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				out := make([]byte, i-start+1)
				copy(out, f.buf[start:i+1])
				f.buf = f.buf[i+1:]
				return out, true
			}
		}
	}

	return nil, false
}

// Pending reports the number of buffered, not-yet-framed bytes.
func (f *FrameScanner) Pending() int {
	return len(f.buf)
}
