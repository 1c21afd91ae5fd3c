// Package metainfo extracts torrent metadata from bencoded .torrent data.
//
// Extraction is schema validation over the generic value tree the bencode
// package produces. The raw byte span of the info dictionary is kept verbatim
// so the info-hash is computed over exactly the bytes that appeared in the
// source, never over a re-encoding.
package metainfo

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/fuchsi/torrentinfo/bencode"
)

// MetaInfo is the parsed content of a .torrent file. All fields are intended
// to be read-only.
type MetaInfo struct {
	Announce     string
	AnnounceList AnnounceList
	Comment      string
	CreatedBy    string
	CreationDate int64
	Encoding     string
	HTTPSeeds    []string
	Nodes        []Node

	Info Info
	// The exact bytes the info dictionary occupied in the source buffer.
	InfoBytes bencode.Bytes
}

// Node is a DHT bootstrap node from the trackerless `nodes` field.
type Node struct {
	Host string
	Port int64
}

func (n Node) String() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

// HashInfoBytes returns the SHA-1 info-hash identifying the torrent swarm.
func (mi *MetaInfo) HashInfoBytes() Hash {
	return HashBytes(mi.InfoBytes)
}

// CreationTime converts the creation date field. ok is false if the torrent
// doesn't carry one.
func (mi *MetaInfo) CreationTime() (t time.Time, ok bool) {
	if mi.CreationDate == 0 {
		return
	}
	return time.Unix(mi.CreationDate, 0).UTC(), true
}

// Parse decodes buf as a complete torrent file and extracts its metadata.
func Parse(buf []byte) (*MetaInfo, error) {
	root, err := bencode.Decode(buf)
	if err != nil {
		return nil, err
	}
	return Extract(root, buf)
}

// Load reads a torrent file from r. Everything is held in memory; torrent
// files are small.
func Load(r io.Reader) (*MetaInfo, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading torrent data")
	}
	return Parse(buf)
}

// LoadFromFile is a convenience wrapper for loading a torrent from disk.
func LoadFromFile(filename string) (*MetaInfo, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mi, err := Load(f)
	return mi, errors.Wrapf(err, "loading %q", filename)
}

// Extract walks an already-decoded value tree and validates the torrent
// schema. src must be the buffer root was decoded from; it is needed only to
// slice out the raw info dictionary span.
func Extract(root bencode.Value, src []byte) (*MetaInfo, error) {
	if root.Kind() != bencode.Dict {
		return nil, ErrNotADict
	}
	var mi MetaInfo
	var err error

	infoValue, ok := root.Get("info")
	if !ok {
		return nil, &FieldError{Field: "info", Err: ErrMissingField}
	}
	if infoValue.Kind() != bencode.Dict {
		return nil, &TypeError{Field: "info", Expected: bencode.Dict, Actual: infoValue.Kind()}
	}
	mi.InfoBytes = bencode.Bytes(infoValue.Raw(src)).Copy()

	if mi.Announce, _, err = optionalString(root, "announce"); err != nil {
		return nil, err
	}
	if mi.AnnounceList, err = announceList(root); err != nil {
		return nil, err
	}
	if mi.Comment, _, err = optionalString(root, "comment"); err != nil {
		return nil, err
	}
	if mi.CreatedBy, _, err = optionalString(root, "created by"); err != nil {
		return nil, err
	}
	if mi.CreationDate, _, err = optionalInteger(root, "creation date"); err != nil {
		return nil, err
	}
	if mi.Encoding, _, err = optionalString(root, "encoding"); err != nil {
		return nil, err
	}
	if mi.HTTPSeeds, err = stringList(root, "httpseeds"); err != nil {
		return nil, err
	}
	if mi.Nodes, err = nodeList(root); err != nil {
		return nil, err
	}
	if err = extractInfo(&mi.Info, infoValue); err != nil {
		return nil, err
	}
	return &mi, nil
}

func extractInfo(info *Info, v bencode.Value) error {
	var err error
	if info.Name, err = requiredString(v, "name"); err != nil {
		return err
	}
	if info.PieceLength, err = requiredInteger(v, "piece length"); err != nil {
		return err
	}
	if info.PieceLength <= 0 {
		return &FieldError{Field: "piece length", Err: fmt.Errorf("must be positive, got %d", info.PieceLength)}
	}
	pieces, ok := v.Get("pieces")
	if !ok {
		return &FieldError{Field: "pieces", Err: ErrMissingField}
	}
	if pieces.Kind() != bencode.String {
		return &TypeError{Field: "pieces", Expected: bencode.String, Actual: pieces.Kind()}
	}
	if len(pieces.Bytes())%HashSize != 0 {
		return &PiecesLengthError{Length: len(pieces.Bytes())}
	}
	info.Pieces = append([]byte(nil), pieces.Bytes()...)

	if info.MD5Sum, _, err = optionalString(v, "md5sum"); err != nil {
		return err
	}
	if info.Source, _, err = optionalString(v, "source"); err != nil {
		return err
	}
	if info.RootHash, _, err = optionalString(v, "root hash"); err != nil {
		return err
	}
	private, havePrivate, err := optionalInteger(v, "private")
	if err != nil {
		return err
	}
	if havePrivate {
		p := private != 0
		info.Private = &p
	}

	length, haveLength, err := optionalInteger(v, "length")
	if err != nil {
		return err
	}
	files, haveFiles := v.Get("files")
	switch {
	case haveLength && haveFiles:
		return ErrAmbiguousFileShape
	case !haveLength && !haveFiles:
		return ErrMissingFileShape
	case haveLength:
		if length < 0 {
			return &FieldError{Field: "length", Err: fmt.Errorf("negative length %d", length)}
		}
		info.Length = length
	default:
		if info.Files, err = extractFiles(files); err != nil {
			return err
		}
	}
	return nil
}

func extractFiles(v bencode.Value) ([]FileInfo, error) {
	if v.Kind() != bencode.List {
		return nil, &TypeError{Field: "files", Expected: bencode.List, Actual: v.Kind()}
	}
	ret := make([]FileInfo, 0, len(v.List()))
	for _, entry := range v.List() {
		if entry.Kind() != bencode.Dict {
			return nil, &TypeError{Field: "files", Expected: bencode.Dict, Actual: entry.Kind()}
		}
		var fi FileInfo
		length, err := requiredInteger(entry, "length")
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, &FieldError{Field: "length", Err: fmt.Errorf("negative length %d", length)}
		}
		fi.Length = length
		path, ok := entry.Get("path")
		if !ok {
			return nil, &FieldError{Field: "path", Err: ErrMissingField}
		}
		if path.Kind() != bencode.List {
			return nil, &TypeError{Field: "path", Expected: bencode.List, Actual: path.Kind()}
		}
		if len(path.List()) == 0 {
			return nil, &FieldError{Field: "path", Err: ErrEmptyPathSegment}
		}
		for _, seg := range path.List() {
			if seg.Kind() != bencode.String {
				return nil, &TypeError{Field: "path", Expected: bencode.String, Actual: seg.Kind()}
			}
			if len(seg.Bytes()) == 0 {
				return nil, &FieldError{Field: "path", Err: ErrEmptyPathSegment}
			}
			fi.Path = append(fi.Path, seg.Str())
		}
		if fi.MD5Sum, _, err = optionalString(entry, "md5sum"); err != nil {
			return nil, err
		}
		ret = append(ret, fi)
	}
	return ret, nil
}

func announceList(root bencode.Value) (AnnounceList, error) {
	v, ok := root.Get("announce-list")
	if !ok {
		return nil, nil
	}
	// A malformed announce-list is a schema error, not something to drop
	// silently.
	if v.Kind() != bencode.List {
		return nil, &TypeError{Field: "announce-list", Expected: bencode.List, Actual: v.Kind()}
	}
	var al AnnounceList
	for _, tier := range v.List() {
		if tier.Kind() != bencode.List {
			return nil, &TypeError{Field: "announce-list", Expected: bencode.List, Actual: tier.Kind()}
		}
		urls := make([]string, 0, len(tier.List()))
		for _, u := range tier.List() {
			if u.Kind() != bencode.String {
				return nil, &TypeError{Field: "announce-list", Expected: bencode.String, Actual: u.Kind()}
			}
			urls = append(urls, u.Str())
		}
		al = append(al, urls)
	}
	return al, nil
}

func stringList(root bencode.Value, field string) ([]string, error) {
	v, ok := root.Get(field)
	if !ok {
		return nil, nil
	}
	if v.Kind() != bencode.List {
		return nil, &TypeError{Field: field, Expected: bencode.List, Actual: v.Kind()}
	}
	ret := make([]string, 0, len(v.List()))
	for _, e := range v.List() {
		if e.Kind() != bencode.String {
			return nil, &TypeError{Field: field, Expected: bencode.String, Actual: e.Kind()}
		}
		ret = append(ret, e.Str())
	}
	return ret, nil
}

// nodeList parses the trackerless `nodes` field: a list of [host, port]
// pairs.
func nodeList(root bencode.Value) ([]Node, error) {
	v, ok := root.Get("nodes")
	if !ok {
		return nil, nil
	}
	if v.Kind() != bencode.List {
		return nil, &TypeError{Field: "nodes", Expected: bencode.List, Actual: v.Kind()}
	}
	ret := make([]Node, 0, len(v.List()))
	for _, e := range v.List() {
		if e.Kind() != bencode.List || len(e.List()) != 2 {
			return nil, &FieldError{Field: "nodes", Err: errors.New("node entry must be a [host, port] pair")}
		}
		host, port := e.List()[0], e.List()[1]
		if host.Kind() != bencode.String {
			return nil, &TypeError{Field: "nodes", Expected: bencode.String, Actual: host.Kind()}
		}
		if port.Kind() != bencode.Integer {
			return nil, &TypeError{Field: "nodes", Expected: bencode.Integer, Actual: port.Kind()}
		}
		ret = append(ret, Node{Host: host.Str(), Port: port.Int64()})
	}
	return ret, nil
}

func requiredString(d bencode.Value, field string) (string, error) {
	s, ok, err := optionalString(d, field)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &FieldError{Field: field, Err: ErrMissingField}
	}
	return s, nil
}

func optionalString(d bencode.Value, field string) (string, bool, error) {
	v, ok := d.Get(field)
	if !ok {
		return "", false, nil
	}
	if v.Kind() != bencode.String {
		return "", false, &TypeError{Field: field, Expected: bencode.String, Actual: v.Kind()}
	}
	return v.Str(), true, nil
}

func requiredInteger(d bencode.Value, field string) (int64, error) {
	n, ok, err := optionalInteger(d, field)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &FieldError{Field: field, Err: ErrMissingField}
	}
	return n, nil
}

func optionalInteger(d bencode.Value, field string) (int64, bool, error) {
	v, ok := d.Get(field)
	if !ok {
		return 0, false, nil
	}
	if v.Kind() != bencode.Integer {
		return 0, false, &TypeError{Field: field, Expected: bencode.Integer, Actual: v.Kind()}
	}
	return v.Int64(), true, nil
}
