package board

import "errors"

var (
	ErrOutOfBounds    = errors.New("cell is outside the board")
	ErrPlacementTaken = errors.New("a boat is already anchored there")
	ErrQuotaExceeded  = errors.New("boat kind is already placed")
)
