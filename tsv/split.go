package tsv

import (
	"bufio"
	"bytes"
)

// SplitRows returns a bufio.SplitFunc splitting input into rows, with
// any trailing carriage return removed. A final row need not be
// newline terminated.
//
// endOfRow, if non-nil, will be called at the end of each row.
func SplitRows(endOfRow func()) bufio.SplitFunc {
	return func(b []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(b) == 0 {
			return 0, nil, nil
		}
		if idx := bytes.IndexByte(b, '\n'); idx > -1 {
			advance, token = idx+1, dropCR(b[:idx])
		} else if atEOF {
			advance, token = len(b), dropCR(b)
		} else {
			// request more data
			return 0, nil, nil
		}
		if endOfRow != nil {
			endOfRow()
		}
		return advance, token, nil
	}
}

func dropCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}
