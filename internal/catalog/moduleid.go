package catalog

import "unicode/utf16"

// ModuleID derives the numeric identifier of a module from its code.
//
// The hash walks the UTF-16 code units of code, computing h = h*31 + unit
// with 32-bit two's-complement wrap at every step, and returns |h| widened
// to 64 bits so that |MinInt32| stays positive. Identifiers already stored
// by the hosted backend were produced with this exact scheme.
func ModuleID(code string) int64 {
	var h int32
	for _, r := range code {
		if utf16.RuneLen(r) == 2 {
			r1, r2 := utf16.EncodeRune(r)
			h = h*31 + int32(r1)
			h = h*31 + int32(r2)
			continue
		}
		h = h*31 + int32(r)
	}

	id := int64(h)
	if id < 0 {
		return -id
	}
	return id
}
