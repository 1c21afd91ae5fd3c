package bencode

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// Terminal grammar errors. Decode failures wrap one of these in a
// *SyntaxError carrying the buffer offset, so callers can match with
// errors.Is while still getting a diagnosable message.
var (
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrInvalidInteger      = errors.New("invalid integer")
	ErrInvalidStringLength = errors.New("invalid string length")
	ErrMissingTerminator   = errors.New("missing 'e' terminator")
	ErrKeyOrderViolation   = errors.New("dictionary keys out of order")
	ErrTrailingData        = errors.New("trailing data after value")
	ErrTooDeep             = errors.New("nesting too deep")
)

// SyntaxError reports where in the buffer decoding failed and why.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: syntax error (offset: %d): %s", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// DefaultMaxDepth bounds list/dictionary nesting to keep adversarial input
// from exhausting the stack.
const DefaultMaxDepth = 4096

// A Decoder holds decoding options. The zero value decodes with strict
// defaults: the whole buffer must be exactly one value, and dictionaries must
// have unique, ascending keys.
type Decoder struct {
	// Permit bytes after the top-level value instead of failing with
	// ErrTrailingData. Some torrent files in the wild carry trailing
	// garbage; callers that want to accept them opt in here.
	AllowTrailingData bool

	// Maximum list/dictionary nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Decode parses a single bencode value from the start of data and returns it
// together with the number of bytes consumed.
func (d *Decoder) Decode(data []byte) (Value, int, error) {
	maxDepth := d.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	p := parser{data: data, maxDepth: maxDepth}
	v, err := p.value(0)
	if err != nil {
		return Value{}, 0, err
	}
	if !d.AllowTrailingData && p.pos != len(data) {
		return Value{}, 0, &SyntaxError{
			Offset: int64(p.pos),
			Err:    fmt.Errorf("%w: %d bytes", ErrTrailingData, len(data)-p.pos),
		}
	}
	return v, p.pos, nil
}

// Decode parses data as exactly one bencode value with strict defaults.
func Decode(data []byte) (Value, error) {
	var d Decoder
	v, _, err := d.Decode(data)
	return v, err
}

type parser struct {
	data     []byte
	pos      int
	maxDepth int
}

func (p *parser) fail(at int, err error) error {
	return &SyntaxError{Offset: int64(at), Err: err}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	return p.data[p.pos], true
}

func (p *parser) value(depth int) (Value, error) {
	if depth > p.maxDepth {
		return Value{}, p.fail(p.pos, ErrTooDeep)
	}
	c, ok := p.peek()
	if !ok {
		return Value{}, p.fail(p.pos, ErrUnexpectedEOF)
	}
	switch {
	case c == 'i':
		return p.integer()
	case c == 'l':
		return p.list(depth)
	case c == 'd':
		return p.dict(depth)
	case c >= '0' && c <= '9':
		return p.str()
	default:
		return Value{}, p.fail(p.pos, fmt.Errorf("%w: unexpected byte %q", ErrInvalidInteger, c))
	}
}

func (p *parser) integer() (Value, error) {
	start := p.pos
	p.pos++ // 'i'
	end := bytes.IndexByte(p.data[p.pos:], 'e')
	if end < 0 {
		return Value{}, p.fail(start, ErrMissingTerminator)
	}
	digits := p.data[p.pos : p.pos+end]
	if err := checkIntegerDigits(digits); err != nil {
		return Value{}, p.fail(p.pos, err)
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return Value{}, p.fail(p.pos, fmt.Errorf("%w: %q", ErrInvalidInteger, digits))
	}
	p.pos += end + 1
	return Value{kind: Integer, num: n, start: start, end: p.pos}, nil
}

// checkIntegerDigits enforces the canonical integer form: optional '-', no
// empty digit sequence, no leading zeros except the bare "0", no "-0".
func checkIntegerDigits(s []byte) error {
	t := s
	if len(t) > 0 && t[0] == '-' {
		t = t[1:]
		if len(t) > 0 && t[0] == '0' {
			return fmt.Errorf("%w: %q", ErrInvalidInteger, s)
		}
	}
	if len(t) == 0 {
		return fmt.Errorf("%w: empty digits", ErrInvalidInteger)
	}
	if t[0] == '0' && len(t) > 1 {
		return fmt.Errorf("%w: leading zero in %q", ErrInvalidInteger, s)
	}
	for _, c := range t {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidInteger, s)
		}
	}
	return nil
}

func (p *parser) str() (Value, error) {
	start := p.pos
	colon := bytes.IndexByte(p.data[p.pos:], ':')
	if colon < 0 {
		return Value{}, p.fail(start, ErrUnexpectedEOF)
	}
	length, err := strconv.ParseInt(string(p.data[p.pos:p.pos+colon]), 10, 64)
	if err != nil || length < 0 {
		return Value{}, p.fail(start, fmt.Errorf("%w: %q", ErrInvalidStringLength, p.data[p.pos:p.pos+colon]))
	}
	p.pos += colon + 1
	if int64(len(p.data)-p.pos) < length {
		return Value{}, p.fail(start, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, length, len(p.data)-p.pos))
	}
	s := p.data[p.pos : p.pos+int(length)]
	p.pos += int(length)
	return Value{kind: String, str: s, start: start, end: p.pos}, nil
}

func (p *parser) list(depth int) (Value, error) {
	start := p.pos
	p.pos++ // 'l'
	var elems []Value
	for {
		c, ok := p.peek()
		if !ok {
			return Value{}, p.fail(start, ErrMissingTerminator)
		}
		if c == 'e' {
			p.pos++
			return Value{kind: List, list: elems, start: start, end: p.pos}, nil
		}
		v, err := p.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func (p *parser) dict(depth int) (Value, error) {
	start := p.pos
	p.pos++ // 'd'
	var items []DictItem
	var prevKey []byte
	for {
		c, ok := p.peek()
		if !ok {
			return Value{}, p.fail(start, ErrMissingTerminator)
		}
		if c == 'e' {
			p.pos++
			return Value{kind: Dict, dict: items, start: start, end: p.pos}, nil
		}
		keyAt := p.pos
		if c < '0' || c > '9' {
			return Value{}, p.fail(keyAt, fmt.Errorf("%w: dictionary key must be a string", ErrInvalidStringLength))
		}
		key, err := p.str()
		if err != nil {
			return Value{}, err
		}
		// Canonical bencode requires strictly ascending keys. Enforcing it
		// here means every consumer can rely on sorted, duplicate-free
		// dictionaries, which the info-hash depends on.
		if prevKey != nil && bytes.Compare(key.str, prevKey) <= 0 {
			return Value{}, p.fail(keyAt, fmt.Errorf("%w: %q after %q", ErrKeyOrderViolation, key.str, prevKey))
		}
		prevKey = key.str
		v, err := p.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, DictItem{Key: key.str, Value: v})
	}
}
