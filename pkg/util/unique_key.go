package util

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateUniqueKey returns a key that is distinct for every call. It is a
// UUIDv7, i.e. a millisecond timestamp followed by random bits; it is not
// meant as a secret.
func GenerateUniqueKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy source failure; fall back to nanoseconds plus a v4
		return fmt.Sprintf("%x-%s", time.Now().UnixNano(), uuid.NewString())
	}
	return id.String()
}

// GenerateRequestID returns an identifier for log correlation.
func GenerateRequestID() string {
	return uuid.NewString()
}
