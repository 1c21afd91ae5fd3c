package metainfo

// The info dictionary. See BEP 3.
type Info struct {
	Name        string
	PieceLength int64
	Pieces      []byte
	Private     *bool
	Source      string

	// Exactly one of Length and Files is set in a valid torrent. Length
	// describes the classic single-file shape, Files the multi-file shape.
	Length int64
	MD5Sum string
	Files  []FileInfo

	// From BEP 30 merkle torrents; carried through for display.
	RootHash string
}

// TotalLength sums the file lengths. The torrent format doesn't store this
// for multi-file torrents.
func (info *Info) TotalLength() (ret int64) {
	if len(info.Files) == 0 {
		return info.Length
	}
	for _, fi := range info.Files {
		ret += fi.Length
	}
	return
}

func (info *Info) NumPieces() int {
	return len(info.Pieces) / HashSize
}

// NumFiles counts actual files: a single-file torrent has one even though
// Files is empty.
func (info *Info) NumFiles() int {
	if len(info.Files) == 0 {
		return 1
	}
	return len(info.Files)
}

// Whether the torrent unpacks to a directory. Single-file torrents unpack to
// a file named Name.
func (info *Info) IsDir() bool {
	return len(info.Files) != 0
}

// UpvertedFiles converts the single-file shape up to the multi-file one if
// necessary, so callers need not branch on torrent shape. For a single-file
// torrent the entry's Path is nil and Name is the basename.
func (info *Info) UpvertedFiles() []FileInfo {
	if len(info.Files) == 0 {
		return []FileInfo{{
			Length: info.Length,
			Path:   nil,
			MD5Sum: info.MD5Sum,
		}}
	}
	return info.Files
}

func (info *Info) Piece(index int) Piece {
	return Piece{info, index}
}
