package sale

import "github.com/google/uuid"

// IDGenerator produces invoice identifiers unique across the installation.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator issues random UUIDs. Timestamp-derived ids collide once two
// stations commit within the clock's granularity; UUIDs do not.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
