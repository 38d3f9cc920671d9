package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrMissingAction    = errors.New("missing action")
	ErrMalformedBoard   = errors.New("malformed board")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)
