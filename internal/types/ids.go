package types

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ID is a UUID-backed identifier. One ID is minted per workflow run and
// threaded through events, logs, and results.
type ID string

// NewID generates a new random ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// ParseID validates s as a UUID and returns it as an ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return ID(parsed.String()), nil
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON serializes the ID as a JSON string, or null when unset.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON deserializes a JSON string into an ID, validating the
// UUID format. An empty string sets the zero value.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to unmarshal ID: %w", err)
	}
	if s == "" {
		*id = ""
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
