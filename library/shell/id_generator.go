package shell

import (
	"github.com/google/uuid"
)

// IDGenerator hands out loan and reservation ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a function, e.g. a deterministic sequence in tests.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}
