package bencode

import "strconv"

// Encode renders v back to canonical bencode. Dictionaries are written in
// their stored entry order; trees produced by the decoder are already
// canonical, and hand-built trees are the caller's responsibility.
func Encode(v Value) []byte {
	return v.AppendTo(nil)
}

// AppendTo appends the canonical encoding of v to b and returns the extended
// slice.
func (v Value) AppendTo(b []byte) []byte {
	switch v.kind {
	case Integer:
		b = append(b, 'i')
		b = strconv.AppendInt(b, v.num, 10)
		b = append(b, 'e')
	case String:
		b = strconv.AppendInt(b, int64(len(v.str)), 10)
		b = append(b, ':')
		b = append(b, v.str...)
	case List:
		b = append(b, 'l')
		for _, e := range v.list {
			b = e.AppendTo(b)
		}
		b = append(b, 'e')
	case Dict:
		b = append(b, 'd')
		for _, it := range v.dict {
			b = NewString(it.Key).AppendTo(b)
			b = it.Value.AppendTo(b)
		}
		b = append(b, 'e')
	}
	return b
}
