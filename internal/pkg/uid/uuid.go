package uid

import "github.com/google/uuid"

// UUID generates time ordered v7 UUIDs.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate falls back to a random v4 UUID when v7 cannot be produced.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
