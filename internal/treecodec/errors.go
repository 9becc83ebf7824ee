package treecodec

import "errors"

var (
	// ErrInvalidFormat reports input that is not a tree design at all:
	// malformed JSON, missing fields, wrong tuple arity.
	ErrInvalidFormat = errors.New("treecodec: invalid format")

	// ErrUnsupportedVersion reports a well-formed document with a version
	// tag this package does not know.
	ErrUnsupportedVersion = errors.New("treecodec: unsupported version")
)
