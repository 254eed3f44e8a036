package board

// Size is the width and height of every board.
const Size = 10

// State tracks whether a cell has been guessed.
type State string

const (
	StateSafe State = "safe"
	StateHit  State = "hit"
)

// Cell is a single square on a board.
type Cell struct {
	Piece Piece `json:"piece"`
	State State `json:"state"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
}

// Placement records one boat anchored on a board. The anchor is the back
// segment's cell; the run extends rightward, or downward when Vertical.
type Placement struct {
	Kind     Kind `json:"kind"`
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Vertical bool `json:"vertical"`
}

// PlacedCell pairs a coordinate with the segment that lands on it.
type PlacedCell struct {
	Row   int
	Col   int
	Piece Piece
}

// ComputeCells expands a placement into its ordered cell run. Returns
// ErrOutOfBounds if any cell would leave the grid.
func ComputeCells(kind Kind, row, col int, vertical bool) ([]PlacedCell, error) {
	pieces := kind.Pieces()
	cells := make([]PlacedCell, 0, len(pieces))
	for i, p := range pieces {
		r, c := row, col+i
		if vertical {
			r, c = row+i, col
		}
		if r < 0 || r >= Size || c < 0 || c >= Size {
			return nil, ErrOutOfBounds
		}
		cells = append(cells, PlacedCell{Row: r, Col: c, Piece: p})
	}
	return cells, nil
}

// Board is one player's 10x10 grid plus the log of boats placed on it.
type Board struct {
	cells      [Size][Size]Cell
	placements []Placement
}

// New creates an all-ocean board.
func New() *Board {
	b := &Board{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.cells[r][c] = Cell{Piece: PieceOcean, State: StateSafe, Row: r, Col: c}
		}
	}
	return b
}

// At returns the cell at (row, col).
func (b *Board) At(row, col int) (Cell, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[row][col], nil
}

// CanPlace reports whether the placement's anchor/orientation combination
// is still free. Cell runs from differently-anchored boats are allowed to
// intersect; only re-anchoring an existing placement is rejected.
func (b *Board) CanPlace(p Placement) bool {
	for _, existing := range b.placements {
		if existing.Row == p.Row && existing.Col == p.Col && existing.Vertical == p.Vertical {
			return false
		}
	}
	return true
}

// KindPlaced reports whether a boat of the given kind is already on the board.
func (b *Board) KindPlaced(kind Kind) bool {
	for _, p := range b.placements {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// Place writes a full boat onto the board. The cells must have been computed
// from the placement via ComputeCells.
func (b *Board) Place(p Placement, cells []PlacedCell) error {
	if !b.CanPlace(p) {
		return ErrPlacementTaken
	}
	if b.KindPlaced(p.Kind) {
		return ErrQuotaExceeded
	}
	for _, pc := range cells {
		b.cells[pc.Row][pc.Col].Piece = pc.Piece
	}
	b.placements = append(b.placements, p)
	return nil
}

// Remove clears the cell at (row, col) back to ocean. Removal is identified
// by position, never by declared type, and removing an ocean cell is a no-op.
// A placement anchored exactly at (row, col) is dropped from the log so the
// anchor and the kind's quota slot are freed.
func (b *Board) Remove(row, col int) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return
	}
	b.cells[row][col].Piece = PieceOcean
	for i, p := range b.placements {
		if p.Row == row && p.Col == col {
			b.placements = append(b.placements[:i], b.placements[i+1:]...)
			break
		}
	}
}

// ApplyGuess marks the targeted cell hit and reports whether a boat segment
// was there before the guess. A hit cell never reverts.
func (b *Board) ApplyGuess(row, col int) (bool, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return false, ErrOutOfBounds
	}
	wasHit := b.cells[row][col].Piece != PieceOcean
	b.cells[row][col].State = StateHit
	return wasHit, nil
}

// AllSunk reports whether every boat cell on the board has been hit.
func (b *Board) AllSunk() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := b.cells[r][c]
			if cell.Piece != PieceOcean && cell.State != StateHit {
				return false
			}
		}
	}
	return true
}

// FullyPopulated reports whether the board carries exactly one full set of
// the boat catalogue.
func (b *Board) FullyPopulated() bool {
	if len(b.placements) != len(Kinds()) {
		return false
	}
	for _, k := range Kinds() {
		if !b.KindPlaced(k) {
			return false
		}
	}
	return true
}

// BoatCells counts the cells currently occupied by a boat segment.
func (b *Board) BoatCells() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c].Piece != PieceOcean {
				n++
			}
		}
	}
	return n
}

// Placements returns a copy of the placement log.
func (b *Board) Placements() []Placement {
	out := make([]Placement, len(b.placements))
	copy(out, b.placements)
	return out
}

// Cells returns a copy of the full grid.
func (b *Board) Cells() [Size][Size]Cell {
	return b.cells
}

// Redacted returns a copy of the grid with hidden information withheld:
// piece types are exposed only on cells that have been hit, so an opponent
// view can be built without leaking unsunk boat locations.
func (b *Board) Redacted() [Size][Size]Cell {
	cells := b.cells
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if cells[r][c].State != StateHit {
				cells[r][c].Piece = PieceOcean
			}
		}
	}
	return cells
}
