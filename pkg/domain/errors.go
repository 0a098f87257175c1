package domain

import "errors"

var (
	// ErrInvalidArgument classifies caller-correctable request failures.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyRepository is the error returned when a repository cannot satisfy
	// a bounded query. The wording is shared by every Take failure.
	ErrEmptyRepository = errors.New(emptyRepositoryMessage)
)

const emptyRepositoryMessage = "Empty repository"

// InvalidArgumentError reports a bounded query that the repository could not
// satisfy. Error always yields "Empty repository"; Requested and Available
// tell the cases apart.
type InvalidArgumentError struct {
	Op        string
	Requested int
	Available int
}

func (e InvalidArgumentError) Error() string { return emptyRepositoryMessage }

// Is matches both ErrInvalidArgument and ErrEmptyRepository.
func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument || target == ErrEmptyRepository
}
