package board

import "fmt"

// Kind identifies one of the five boat types in the catalogue.
type Kind string

const (
	KindAircraftCarrier Kind = "aircraft-carrier"
	KindBattleship      Kind = "battleship"
	KindCruiser         Kind = "cruiser"
	KindDestroyer       Kind = "destroyer"
	KindSubmarine       Kind = "submarine"
)

// Piece identifies what occupies a single cell: one of the fifteen boat
// segments, or open ocean.
type Piece string

const (
	PieceOcean Piece = "ocean"

	PieceCarrierBack     Piece = "carrier-back"
	PieceCarrierMidBack  Piece = "carrier-mid-back"
	PieceCarrierMidFront Piece = "carrier-mid-front"
	PieceCarrierFront    Piece = "carrier-front"

	PieceBattleshipBack     Piece = "battleship-back"
	PieceBattleshipBackMid  Piece = "battleship-back-mid"
	PieceBattleshipMid      Piece = "battleship-mid"
	PieceBattleshipFrontMid Piece = "battleship-front-mid"
	PieceBattleshipFront    Piece = "battleship-front"

	PieceCruiserBack  Piece = "cruiser-back"
	PieceCruiserFront Piece = "cruiser-front"

	PieceDestroyerSolo Piece = "destroyer-solo"

	PieceSubmarineBack  Piece = "submarine-back"
	PieceSubmarineMid   Piece = "submarine-mid"
	PieceSubmarineFront Piece = "submarine-front"
)

// segments maps each kind to its ordered piece sequence, back to front.
var segments = map[Kind][]Piece{
	KindAircraftCarrier: {PieceCarrierBack, PieceCarrierMidBack, PieceCarrierMidFront, PieceCarrierFront},
	KindBattleship:      {PieceBattleshipBack, PieceBattleshipBackMid, PieceBattleshipMid, PieceBattleshipFrontMid, PieceBattleshipFront},
	KindCruiser:         {PieceCruiserBack, PieceCruiserFront},
	KindDestroyer:       {PieceDestroyerSolo},
	KindSubmarine:       {PieceSubmarineBack, PieceSubmarineMid, PieceSubmarineFront},
}

// Kinds returns the full boat catalogue in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindAircraftCarrier,
		KindBattleship,
		KindCruiser,
		KindDestroyer,
		KindSubmarine,
	}
}

// Pieces returns the kind's ordered segment sequence, back to front.
func (k Kind) Pieces() []Piece {
	return segments[k]
}

// Length returns the number of cells the kind occupies.
func (k Kind) Length() int {
	return len(segments[k])
}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := segments[k]; !ok {
		return "", fmt.Errorf("unknown boat kind: %s", s)
	}
	return k, nil
}
