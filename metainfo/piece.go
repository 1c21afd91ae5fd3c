package metainfo

import "fmt"

type Piece struct {
	Info *Info
	i    int
}

func (p Piece) String() string {
	return fmt.Sprintf("metainfo.Piece(Info.Name=%q, i=%v)", p.Info.Name, p.i)
}

func (p Piece) Index() int {
	return p.i
}

func (p Piece) Offset() int64 {
	return int64(p.i) * p.Info.PieceLength
}

// Length is PieceLength except for the final piece, which covers whatever
// remains.
func (p Piece) Length() int64 {
	if p.i == p.Info.NumPieces()-1 {
		if rem := p.Info.TotalLength() % p.Info.PieceLength; rem != 0 {
			return rem
		}
	}
	return p.Info.PieceLength
}

func (p Piece) Hash() (ret Hash) {
	copy(ret[:], p.Info.Pieces[p.i*HashSize:(p.i+1)*HashSize])
	return
}
