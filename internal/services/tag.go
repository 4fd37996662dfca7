package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storetags/internal/domain"
)

type tagService struct {
	uow            domain.UnitOfWork
	cache          domain.TagCache
	contextTimeout time.Duration
}

// NewTagService creates a TagService. Every operation runs in its own unit of work.
// cache may be nil, in which case lookups always go to the repositories.
func NewTagService(uow domain.UnitOfWork, cache domain.TagCache, timeout time.Duration) domain.TagService {
	if cache == nil {
		cache = nopCache{}
	}
	return &tagService{
		uow:            uow,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func (s *tagService) ListStoreTags(ctx context.Context, storeID int64) ([]*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tags, gen, ok := s.cache.GetStoreTags(ctx, storeID)
	if ok {
		return tags, nil
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Stores.GetByID(ctx, storeID); err != nil {
			return fmt.Errorf("get store: %w", notFoundAs(err, domain.ErrStoreNotFound))
		}
		var err error
		tags, err = repos.Tags.ListByStoreID(ctx, storeID)
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.SetStoreTags(ctx, storeID, tags, gen)
	return tags, nil
}

// CreateTag does not look for an existing tag with the same name first; the
// storage constraint on (store_id, name) is what reports ErrConflict.
func (s *tagService) CreateTag(ctx context.Context, storeID int64, name string) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required: %w", domain.ErrInvalidInput)
	}

	tag := domain.NewTag(name, storeID)
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Stores.GetByID(ctx, storeID); err != nil {
			return fmt.Errorf("get store: %w", notFoundAs(err, domain.ErrStoreNotFound))
		}
		if err := repos.Tags.Create(ctx, tag); err != nil {
			return fmt.Errorf("create tag: %w", notFoundAs(err, domain.ErrStoreNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tag.ID, storeID)
	return tag, nil
}

func (s *tagService) GetTag(ctx context.Context, tagID int64) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tag, gen, ok := s.cache.GetTag(ctx, tagID)
	if ok {
		return tag, nil
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		tag, err = repos.Tags.GetByID(ctx, tagID)
		if err != nil {
			return fmt.Errorf("get tag: %w", notFoundAs(err, domain.ErrTagNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.SetTag(ctx, tag, gen)
	return tag, nil
}

// DeleteTag removes a tag that has no linked items. A tag still in use is
// left untouched and ErrTagInUse is returned; links are never cascaded.
func (s *tagService) DeleteTag(ctx context.Context, tagID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var tag *domain.Tag
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		tag, err = repos.Tags.GetByID(ctx, tagID)
		if err != nil {
			return fmt.Errorf("get tag: %w", notFoundAs(err, domain.ErrTagNotFound))
		}
		n, err := repos.Tags.CountItems(ctx, tagID)
		if err != nil {
			return fmt.Errorf("count tag items: %w", err)
		}
		if n > 0 {
			return domain.ErrTagInUse
		}
		if err := repos.Tags.Delete(ctx, tagID); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tag.ID, tag.StoreID)
	return nil
}

func (s *tagService) LinkTagToItem(ctx context.Context, itemID, tagID int64) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var tag *domain.Tag
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		item, t, err := loadItemAndTag(ctx, repos, itemID, tagID)
		if err != nil {
			return err
		}
		if item.StoreID != t.StoreID {
			return domain.ErrCrossStore
		}
		if err := repos.Tags.Link(ctx, tagID, itemID); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
		tag = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) UnlinkTagFromItem(ctx context.Context, itemID, tagID int64) (*domain.Item, *domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		item *domain.Item
		tag  *domain.Tag
	)
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		item, tag, err = loadItemAndTag(ctx, repos, itemID, tagID)
		if err != nil {
			return err
		}
		if err := repos.Tags.Unlink(ctx, tagID, itemID); err != nil {
			return fmt.Errorf("unlink tag: %w", err)
		}
		item.Tags, err = repos.Tags.ListByItemID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("list item tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return item, tag, nil
}

func (s *tagService) ListTagItems(ctx context.Context, tagID int64) ([]*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var items []*domain.Item
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Tags.GetByID(ctx, tagID); err != nil {
			return fmt.Errorf("get tag: %w", notFoundAs(err, domain.ErrTagNotFound))
		}
		var err error
		items, err = repos.Items.ListByTagID(ctx, tagID)
		if err != nil {
			return fmt.Errorf("list tag items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *tagService) ListItemTags(ctx context.Context, itemID int64) ([]*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var tags []*domain.Tag
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Items.GetByID(ctx, itemID); err != nil {
			return fmt.Errorf("get item: %w", notFoundAs(err, domain.ErrItemNotFound))
		}
		var err error
		tags, err = repos.Tags.ListByItemID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("list item tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func loadItemAndTag(ctx context.Context, repos domain.Repositories, itemID, tagID int64) (*domain.Item, *domain.Tag, error) {
	item, err := repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("get item: %w", notFoundAs(err, domain.ErrItemNotFound))
	}
	tag, err := repos.Tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, nil, fmt.Errorf("get tag: %w", notFoundAs(err, domain.ErrTagNotFound))
	}
	return item, tag, nil
}

// notFoundAs replaces a bare ErrNotFound with the entity specific target.
func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}

type nopCache struct{}

func (nopCache) GetTag(context.Context, int64) (*domain.Tag, int64, bool) { return nil, -1, false }
func (nopCache) SetTag(context.Context, *domain.Tag, int64) {}
func (nopCache) GetStoreTags(context.Context, int64) ([]*domain.Tag, int64, bool) { return nil, -1, false }
func (nopCache) SetStoreTags(context.Context, int64, []*domain.Tag, int64) {}
func (nopCache) Invalidate(context.Context, int64, int64) {}
