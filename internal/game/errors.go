package game

import "errors"

// Sentinel errors for the game core. Handlers map these onto HTTP codes;
// everything else is treated as an internal failure.
var (
	// ErrInvalidWord: normalization failed (length or charset). No state change.
	ErrInvalidWord = errors.New("invalid word")

	// ErrDuplicateGuess: word already guessed this session. No state change,
	// no guess-budget cost.
	ErrDuplicateGuess = errors.New("word already guessed")

	// ErrNoGuessesRemaining: finite budget exhausted.
	ErrNoGuessesRemaining = errors.New("no guesses remaining")

	// ErrGameCompleted: mutation attempted after the session completed.
	ErrGameCompleted = errors.New("game already completed")

	// ErrSessionNotFound: unknown or expired session id.
	ErrSessionNotFound = errors.New("game not found")

	// ErrNotAuthorized: guess submitted by a user who does not own the session.
	ErrNotAuthorized = errors.New("not authorized to play this game")

	// ErrInvalidConfig: game creation parameters failed validation.
	ErrInvalidConfig = errors.New("invalid game config")

	// ErrPersistence: an external store write failed. The guess outcome is
	// not committed; callers may retry the same guess.
	ErrPersistence = errors.New("persistence failure")
)
