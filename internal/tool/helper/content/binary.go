package content

import "bytes"

// sniffLimit bounds how far IsBinaryContent looks for a NUL byte.
const sniffLimit = 8000

var textBOMs = [][]byte{
	{0xFF, 0xFE},             // UTF-16 LE, also the prefix of UTF-32 LE
	{0xFE, 0xFF},             // UTF-16 BE
	{0x00, 0x00, 0xFE, 0xFF}, // UTF-32 BE
}

// IsBinaryContent reports whether data looks binary: a NUL byte within the
// first sniffLimit bytes. Data starting with a UTF-16 or UTF-32 byte order
// mark is text even though it is full of NULs.
func IsBinaryContent(data []byte) bool {
	for _, bom := range textBOMs {
		if bytes.HasPrefix(data, bom) {
			return false
		}
	}
	return bytes.IndexByte(data[:min(len(data), sniffLimit)], 0) >= 0
}
