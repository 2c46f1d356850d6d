package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds node IDs and handle names accepted from clients.
const MaxIDLength = 128

// ValidateNodeID validates a node ID received from outside the process
// (a drawn connection, an API request body).
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of [MaxIDLength] characters
//
// Whether the node actually exists is checked by the presenter.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidNodeID, "node id %q contains invalid characters", id)
		}
	}
	return nil
}

// ValidateHandle validates an optional connection handle name.
// An empty handle means the node's default handle and is accepted.
func ValidateHandle(handle string) error {
	if handle == "" {
		return nil
	}
	if len(handle) > MaxIDLength {
		return New(ErrCodeInvalidInput, "handle too long (max %d characters)", MaxIDLength)
	}
	if strings.ContainsFunc(handle, func(r rune) bool {
		return unicode.IsControl(r) || unicode.IsSpace(r)
	}) {
		return New(ErrCodeInvalidInput, "handle %q contains invalid characters", handle)
	}
	return nil
}
