package graph

import "errors"

// Errors returned by Dispatch and the state commands. They are fatal to the
// command that raised them and leave the engine untouched; match them with
// errors.Is.
var (
	ErrMissingArgument  = errors.New("missing argument")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingVertex    = errors.New("missing vertex")
	ErrUnknownEdge      = errors.New("unknown edge")
	ErrDuplicateVertex  = errors.New("vertex already exists")
	ErrCascadeUnderflow = errors.New("indirect log shorter than cascade")
	ErrNoSelection      = errors.New("no vertex selected")
)

// ErrMissingEdge is the same failure as ErrUnknownEdge.
var ErrMissingEdge = ErrUnknownEdge
