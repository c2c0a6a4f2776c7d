package service

import "github.com/google/uuid"

// Owned is implemented by entities that belong to a single user
type Owned interface {
	OwnerID() uuid.UUID
}

// isOwner is the single authorization rule for by-id reads and every write:
// the caller must be the entity's owner.
func isOwner(entity Owned, callerID uuid.UUID) bool {
	if entity == nil || callerID == uuid.Nil {
		return false
	}
	return entity.OwnerID() == callerID
}
