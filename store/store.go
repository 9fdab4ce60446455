package store

import (
	"errors"

	"creava/models"
)

// ErrNotFound is returned when a creation id does not resolve to a record.
var ErrNotFound = errors.New("creation not found")

// CreationStore is the persistence contract the pipeline and the social
// endpoints depend on. The gorm implementation lives in this package;
// tests substitute in-memory fakes.
type CreationStore interface {
	// Insert persists a new creation. The caller assigns the id.
	Insert(creation *models.Creation) error

	// ToggleLike flips userID's membership in the creation's like set and
	// reports whether the user likes the record afterwards. The flip is a
	// single atomic read-modify-write per record; concurrent toggles on the
	// same creation never lose updates.
	ToggleLike(creationID, userID string) (liked bool, err error)

	// ListPublished returns published creations across all users,
	// newest first.
	ListPublished() ([]models.Creation, error)

	// ListOwn returns every creation owned by userID, published or not,
	// newest first.
	ListOwn(userID string) ([]models.Creation, error)
}
