package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	userIDSize     = 21
	userIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewUserID generates an opaque user identifier.
func NewUserID() string {
	return gonanoid.MustGenerate(userIDAlphabet, userIDSize)
}
