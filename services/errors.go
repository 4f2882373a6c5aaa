package services

import "errors"

// Pipeline error classes. Callers wrap these with detail via fmt.Errorf("%w: ...")
// and the HTTP layer maps them with errors.Is.
var (
	// ErrAuth: the session credential is missing or unknown. Re-authenticate, do not retry.
	ErrAuth = errors.New("authentication required")
	// ErrValidation: the request is malformed in a way the player can correct.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound: the referenced game or player does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the player name is already registered.
	ErrConflict = errors.New("conflict")
	// ErrGrading: the LLM call failed or returned no usable score. Nothing was saved.
	ErrGrading = errors.New("grading failed")
	// ErrPersistence: grading succeeded but the player record could not be saved.
	ErrPersistence = errors.New("could not save result")
)

// ErrGameNotFound is returned for unknown or inactive game ids.
var ErrGameNotFound = &gameNotFoundError{}

type gameNotFoundError struct{}

func (*gameNotFoundError) Error() string { return "game not found" }

func (*gameNotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == ErrValidation
}
