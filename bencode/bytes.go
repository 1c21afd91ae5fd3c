package bencode

// Bytes holds an already-encoded bencode fragment verbatim. The metainfo
// package uses it for the raw info dictionary span, whose exact bytes feed
// the info-hash.
type Bytes []byte

func (me Bytes) Copy() Bytes {
	return append(Bytes(nil), me...)
}
