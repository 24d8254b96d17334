package store

import "errors"

// ErrDuplicateName reports a rename onto a name the owner already uses.
var ErrDuplicateName = errors.New("name already in use")

// Attr is the persistence shape shared by tags and ingredients.
type Attr struct {
	ID   uint
	Name string
}

// AttrStore is the owner-scoped surface shared by tags and ingredients.
// Every method only touches rows belonging to ownerID.
type AttrStore interface {
	ListByOwner(ownerID uint) ([]Attr, error)
	GetOrCreate(ownerID uint, name string) (Attr, error)
	Rename(ownerID uint, id uint, name string) (Attr, error)
	Delete(ownerID uint, id uint) error
}
