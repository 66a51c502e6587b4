package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a column in UTF-16 code units to a byte
// offset within line. A column that lands inside a surrogate pair clamps
// to the start of that rune; columns past the end clamp to len(line).
func UTF16ToByteOffset(line string, col int) int {
	units, i := 0, 0
	for i < len(line) && units < col {
		r, size := utf8.DecodeRuneInString(line[i:])
		n := 1
		if !(r == utf8.RuneError && size == 1) {
			n = utf16.RuneLen(r)
		}
		if units+n > col {
			break
		}
		units += n
		i += size
	}
	return i
}

// ByteOffsetToUTF16 counts the UTF-16 code units in line[:offset]. An
// offset inside a multi-byte rune counts only the runes before it.
func ByteOffsetToUTF16(line string, offset int) int {
	offset = min(offset, len(line))
	units, i := 0, 0
	for i < offset {
		r, size := utf8.DecodeRuneInString(line[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}
