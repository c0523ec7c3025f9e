package core

import (
	"errors"
	"regexp"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrAdvisorDisabled is returned when no LLM provider is configured
var ErrAdvisorDisabled = errors.New("advisor disabled: no LLM API key configured")

// ErrNoDecision means the advisor could not produce a usable line
var ErrNoDecision = errors.New("advisor produced no decision")

// ErrDisconnected is returned by world calls once the bridge connection is gone
var ErrDisconnected = errors.New("world bridge disconnected")

var notFoundPattern = regexp.MustCompile(`(?i)not found`)

// BridgeError is a request the world bridge answered with ok=false
type BridgeError struct {
	Op      string
	Message string
}

func (e *BridgeError) Error() string {
	return "bridge rejected " + e.Op + ": " + e.Message
}

// IsBridgeError checks if an error is a rejection from the world bridge
func IsBridgeError(err error) (*BridgeError, bool) {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) {
		return bridgeErr, true
	}
	return nil, false
}

// IsNotFoundError checks if an error is a "not found" error.
// Bridge rejections are plain strings, so their message is matched too.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return notFoundPattern.MatchString(err.Error())
}
