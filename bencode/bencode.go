// Package bencode implements decoding and encoding of the bencode format
// used by torrent metadata. See BEP 3.
//
// Decoding produces a generic value tree rather than filling caller-provided
// structs. Every value remembers the byte span it occupied in the source
// buffer, so consumers can recover the exact raw bytes of any sub-structure
// without re-encoding it.
package bencode

import (
	"bytes"
	"sort"
)

// Kind discriminates the variants of a bencode Value.
type Kind int

const (
	Invalid Kind = iota
	Integer
	String
	List
	Dict
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case String:
		return "string"
	case List:
		return "list"
	case Dict:
		return "dictionary"
	default:
		return "invalid"
	}
}

// DictItem is a single dictionary entry. Entries are kept in source order,
// which the decoder guarantees is ascending raw-byte key order.
type DictItem struct {
	Key   []byte
	Value Value
}

// Value is one node of a decoded bencode tree. The zero value has Kind
// Invalid. Values are immutable once returned by the decoder; each container
// exclusively owns its children. Byte-string payloads alias the buffer passed
// to Decode, so callers that outlive the buffer must copy.
type Value struct {
	kind       Kind
	num        int64
	str        []byte
	list       []Value
	dict       []DictItem
	start, end int
}

func (v Value) Kind() Kind { return v.kind }

// Int64 returns the integer payload. Valid only for Kind Integer.
func (v Value) Int64() int64 { return v.num }

// Bytes returns the raw byte-string payload. Valid only for Kind String.
func (v Value) Bytes() []byte { return v.str }

// Str returns the byte-string payload as a string. Torrent fields routinely
// hold non-UTF-8 bytes; Go strings carry them unchanged.
func (v Value) Str() string { return string(v.str) }

// List returns the ordered elements. Valid only for Kind List.
func (v Value) List() []Value { return v.list }

// Dict returns the ordered entries. Valid only for Kind Dict.
func (v Value) Dict() []DictItem { return v.dict }

// Span returns the [start, end) offsets this value occupied in the buffer it
// was decoded from.
func (v Value) Span() (start, end int) { return v.start, v.end }

// Raw slices the value's exact encoded bytes out of the buffer it was decoded
// from. src must be the same buffer that was passed to Decode.
func (v Value) Raw(src []byte) []byte { return src[v.start:v.end] }

// Get looks up a dictionary key. The decoder guarantees keys are sorted, so
// the lookup is a binary search. The second return is false if v is not a
// dictionary or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Dict {
		return Value{}, false
	}
	i := sort.Search(len(v.dict), func(i int) bool {
		return bytes.Compare(v.dict[i].Key, []byte(key)) >= 0
	})
	if i < len(v.dict) && string(v.dict[i].Key) == key {
		return v.dict[i].Value, true
	}
	return Value{}, false
}

// Equal reports structural equality, ignoring byte spans. Two trees decoded
// from different buffers compare equal when they carry the same values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Integer:
		return v.num == o.num
	case String:
		return bytes.Equal(v.str, o.str)
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case Dict:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for i := range v.dict {
			if !bytes.Equal(v.dict[i].Key, o.dict[i].Key) || !v.dict[i].Value.Equal(o.dict[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Constructors for building trees by hand, mainly for tests and encoding.
// Values built this way carry no meaningful span.

func NewInteger(n int64) Value        { return Value{kind: Integer, num: n} }
func NewString(b []byte) Value        { return Value{kind: String, str: b} }
func NewStr(s string) Value           { return Value{kind: String, str: []byte(s)} }
func NewList(vs ...Value) Value       { return Value{kind: List, list: vs} }
func NewDict(items ...DictItem) Value { return Value{kind: Dict, dict: items} }
