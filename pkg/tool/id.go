package tool

import "github.com/google/uuid"

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateRandomID returns a random (v4) UUID string.
func GenerateRandomID() string {
	return uuid.NewString()
}
