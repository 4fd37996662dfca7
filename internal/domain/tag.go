package domain

import "context"

// Tag is a named label scoped to one store, attachable to items of that store.
// swagger:model Tag
type Tag struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StoreID int64  `json:"store_id"`
}

// NewTag returns a new Tag bound to storeID. ID is set by the repository on create.
func NewTag(name string, storeID int64) *Tag {
	return &Tag{Name: name, StoreID: storeID}
}

// TagRepository defines storage for tags and the item-tag join table.
type TagRepository interface {
	// Create inserts the tag and sets its ID. Returns ErrConflict when the store already has a tag with that name.
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, id int64) (*Tag, error)
	// ListByStoreID returns every tag of the store ordered by name.
	ListByStoreID(ctx context.Context, storeID int64) ([]*Tag, error)
	// ListByItemID returns the tags linked to the item ordered by name.
	ListByItemID(ctx context.Context, itemID int64) ([]*Tag, error)
	Delete(ctx context.Context, id int64) error
	// CountItems returns how many items are linked to the tag.
	CountItems(ctx context.Context, tagID int64) (int, error)
	// Link inserts the join row; linking an already linked pair is a no-op.
	Link(ctx context.Context, tagID, itemID int64) error
	// Unlink deletes the join row. Returns ErrNotLinked when there was none.
	Unlink(ctx context.Context, tagID, itemID int64) error
}

// TagService defines the business logic behind the tag endpoints.
type TagService interface {
	ListStoreTags(ctx context.Context, storeID int64) ([]*Tag, error)
	CreateTag(ctx context.Context, storeID int64, name string) (*Tag, error)
	GetTag(ctx context.Context, tagID int64) (*Tag, error)
	DeleteTag(ctx context.Context, tagID int64) error
	LinkTagToItem(ctx context.Context, itemID, tagID int64) (*Tag, error)
	// UnlinkTagFromItem returns the item (with its remaining tags) and the unlinked tag.
	UnlinkTagFromItem(ctx context.Context, itemID, tagID int64) (*Item, *Tag, error)
	ListTagItems(ctx context.Context, tagID int64) ([]*Item, error)
	ListItemTags(ctx context.Context, itemID int64) ([]*Tag, error)
}

// TagCache is a read cache in front of tag lookups. Implementations must
// treat misses and backend failures the same way: return ok=false.
//
// Every entry is versioned by a generation that Invalidate advances. On a miss
// the getters return the current generation; the caller reads storage and passes
// that generation back to the setter, so a fill that raced an Invalidate is never
// served. A negative generation means the cache is unavailable and the setter
// does nothing.
type TagCache interface {
	GetTag(ctx context.Context, id int64) (tag *Tag, gen int64, ok bool)
	SetTag(ctx context.Context, tag *Tag, gen int64)
	GetStoreTags(ctx context.Context, storeID int64) (tags []*Tag, gen int64, ok bool)
	SetStoreTags(ctx context.Context, storeID int64, tags []*Tag, gen int64)
	// Invalidate advances the generations of the tag and of its store tag list.
	Invalidate(ctx context.Context, tagID, storeID int64)
}
