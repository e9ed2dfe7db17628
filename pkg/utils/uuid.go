package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateSettlementID generates a settlement identifier for a checkout that
// arrives without a client-supplied idempotency key.
func GenerateSettlementID() string {
	return "SET-" + strings.ToUpper(uuid.New().String()[:8]) + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateReceiptNo generates a human-readable receipt number.
func GenerateReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}
