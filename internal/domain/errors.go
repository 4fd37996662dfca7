package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services. Controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")

	// ErrCrossStore is returned when linking an item and a tag of different stores.
	ErrCrossStore = errors.New("item and tag belong to different stores")
	// ErrTagInUse is returned when deleting a tag that is still linked to items.
	ErrTagInUse = errors.New("tag is linked to one or more items")
	// ErrNotLinked is returned when unlinking a tag that is not linked to the item.
	ErrNotLinked = errors.New("tag is not linked to item")
)

// Not-found errors naming the missing entity. All of them match ErrNotFound with errors.Is.
var (
	ErrStoreNotFound = fmt.Errorf("store %w", ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("item %w", ErrNotFound)
	ErrTagNotFound   = fmt.Errorf("tag %w", ErrNotFound)
)
