// Package idgen assigns identifiers to new records.
package idgen

import "github.com/google/uuid"

// Generator produces unique string IDs
type Generator interface {
	NextID() string
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func() string

// NextID implements Generator
func (f GeneratorFunc) NextID() string { return f() }

type uuidGenerator struct{}

// NewUUID returns a Generator of random (version 4) UUIDs
func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NextID() string {
	return uuid.New().String()
}
