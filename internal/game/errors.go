package game

import "errors"

var (
	// Membership errors.
	ErrPlayerAlreadyInGame = errors.New("player is already in the game")
	ErrPlayerNotInGame     = errors.New("player is not in the game")
	ErrGameFull            = errors.New("game is full")

	// Lifecycle errors.
	ErrGameNotStartable  = errors.New("game is not startable")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrGameIdMismatch    = errors.New("game id does not match the live game")
	ErrInvalidCommand    = errors.New("invalid command")

	// Move and placement errors.
	ErrNotYourBoard    = errors.New("that is not your board")
	ErrInvalidMove     = errors.New("invalid move")
	ErrMoveNotYourTurn = errors.New("it is not your turn")
)
