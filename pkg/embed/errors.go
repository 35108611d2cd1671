package embed

import "errors"

var (
	// ErrInvalidArgument reports an unrecognised embed type, modal type or a
	// missing form reference.
	ErrInvalidArgument = errors.New("embed: invalid argument")

	// ErrBadOperation reports a mutator that is not valid for the builder's
	// embed type (e.g. SetLabel on an inline embed).
	ErrBadOperation = errors.New("embed: bad operation")
)
