package state

import (
	"github.com/google/uuid"
)

// newID mints ornament identifiers. Tests swap it for a predictable source.
var newID = uuid.NewString

// NewOrnamentID returns a fresh unique ornament identifier.
func NewOrnamentID() string {
	return newID()
}
