package bencode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type random_decode_test struct {
	data     string
	expected Value
}

var random_decode_tests = []random_decode_test{
	{"i57e", NewInteger(57)},
	{"i-9223372036854775808e", NewInteger(-9223372036854775808)},
	{"i0e", NewInteger(0)},
	{"5:hello", NewStr("hello")},
	{"0:", NewStr("")},
	{"29:unicode test проверка", NewStr("unicode test проверка")},
	{"d1:ai5e1:b5:helloe", NewDict(
		DictItem{[]byte("a"), NewInteger(5)},
		DictItem{[]byte("b"), NewStr("hello")},
	)},
	{"li5ei10ei15ei20e7:bencodee", NewList(
		NewInteger(5), NewInteger(10), NewInteger(15), NewInteger(20), NewStr("bencode"),
	)},
	{"ldedee", NewList(NewDict(), NewDict())},
	{"le", NewList()},
	{"d1:rd6:\xd4/\xe2F\x00\x01i1ee1:t3:\x9a\x87\x011:v4:TR%=1:y1:re", NewDict(
		DictItem{[]byte("r"), NewDict(DictItem{[]byte("\xd4/\xe2F\x00\x01"), NewInteger(1)})},
		DictItem{[]byte("t"), NewStr("\x9a\x87\x01")},
		DictItem{[]byte("v"), NewStr("TR%=")},
		DictItem{[]byte("y"), NewStr("r")},
	)},
}

func TestRandomDecode(t *testing.T) {
	for _, test := range random_decode_tests {
		v, err := Decode([]byte(test.data))
		if err != nil {
			t.Error(err, test.data)
			continue
		}
		assert.True(t, v.Equal(test.expected), "%q", test.data)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		data string
		err  error
	}{
		{"", ErrUnexpectedEOF},
		{"i42", ErrMissingTerminator},
		{"ie", ErrInvalidInteger},
		{"i-e", ErrInvalidInteger},
		{"i-0e", ErrInvalidInteger},
		{"i007e", ErrInvalidInteger},
		{"i2.5e", ErrInvalidInteger},
		{"i9223372036854775808e", ErrInvalidInteger},
		{"e", ErrInvalidInteger},
		{"5:hell", ErrUnexpectedEOF},
		{"5", ErrUnexpectedEOF},
		{"9999999999999999999999:x", ErrInvalidStringLength},
		{"l5:hello", ErrMissingTerminator},
		{"d1:a", ErrUnexpectedEOF},
		{"d1:ai1e", ErrMissingTerminator},
		{"di1ei2ee", ErrInvalidStringLength},
		{"d1:bi1e1:ai2ee", ErrKeyOrderViolation},
		{"d1:ai1e1:ai2ee", ErrKeyOrderViolation},
		{"i42ee", ErrTrailingData},
		{"de garbage", ErrTrailingData},
	} {
		_, err := Decode([]byte(test.data))
		require.Error(t, err, "%q", test.data)
		assert.ErrorIs(t, err, test.err, "%q", test.data)
		var se *SyntaxError
		assert.ErrorAs(t, err, &se, "%q", test.data)
	}
}

func TestDecodeErrorOffset(t *testing.T) {
	_, err := Decode([]byte("e"))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.EqualValues(t, 0, se.Offset)

	_, err = Decode([]byte("d1:bi1e1:ai2ee"))
	require.ErrorAs(t, err, &se)
	assert.EqualValues(t, 7, se.Offset)
}

func TestAllowTrailingData(t *testing.T) {
	d := Decoder{AllowTrailingData: true}
	v, n, err := d.Decode([]byte("i42ee"))
	require.NoError(t, err)
	assert.EqualValues(t, 42, v.Int64())
	assert.EqualValues(t, 4, n)

	// Strict mode reports how much was left over.
	_, _, err = (&Decoder{}).Decode([]byte("i42ee"))
	require.ErrorIs(t, err, ErrTrailingData)
	assert.Contains(t, err.Error(), "1 bytes")
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("l", 100) + strings.Repeat("e", 100)
	_, _, err := (&Decoder{MaxDepth: 50}).Decode([]byte(deep))
	require.ErrorIs(t, err, ErrTooDeep)

	_, _, err = (&Decoder{MaxDepth: 200}).Decode([]byte(deep))
	require.NoError(t, err)

	// The default guard trips well before the stack does.
	hostile := strings.Repeat("d0:l", DefaultMaxDepth)
	_, err = Decode([]byte(hostile))
	require.ErrorIs(t, err, ErrTooDeep)
}

func TestValueSpans(t *testing.T) {
	data := []byte("d8:announce18:http://tracker.x/a4:infod6:lengthi12345eee")
	v, err := Decode(data)
	require.NoError(t, err)
	start, end := v.Span()
	assert.EqualValues(t, 0, start)
	assert.EqualValues(t, len(data), end)

	info, ok := v.Get("info")
	require.True(t, ok)
	assert.EqualValues(t, "d6:lengthi12345ee", info.Raw(data))

	announce, ok := v.Get("announce")
	require.True(t, ok)
	assert.EqualValues(t, "18:http://tracker.x/a", announce.Raw(data))
	assert.EqualValues(t, "http://tracker.x/a", announce.Str())
}

func TestDictGet(t *testing.T) {
	v, err := Decode([]byte("d1:ai1e1:bi2e1:ci3ee"))
	require.NoError(t, err)
	for key, want := range map[string]int64{"a": 1, "b": 2, "c": 3} {
		got, ok := v.Get(key)
		require.True(t, ok, key)
		assert.EqualValues(t, want, got.Int64())
	}
	_, ok := v.Get("d")
	assert.False(t, ok)
	_, ok = NewInteger(7).Get("a")
	assert.False(t, ok)
}

func TestDecodeIdempotent(t *testing.T) {
	data := []byte("d1:ad1:bli1ei2eee1:c4:\x00\x01\x02\x03e")
	v1, err := Decode(data)
	require.NoError(t, err)
	v2, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, v1.Equal(v2))
}
