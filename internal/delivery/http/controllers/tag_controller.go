package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storetags/internal/delivery/http/helpers"
	"storetags/internal/domain"
)

// CreateTagRequest is the request body for POST /store/{store_id}/tag.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c CreateTagRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// TagSuccessResponse is the success response envelope for endpoints returning one tag.
type TagSuccessResponse struct {
	Data  *domain.Tag       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TagListSuccessResponse is the success response envelope for endpoints returning tags.
type TagListSuccessResponse struct {
	Data  []*domain.Tag     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ItemListSuccessResponse is the success response envelope for GET /tag/{tag_id}/item.
type ItemListSuccessResponse struct {
	Data  []*domain.Item    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UnlinkTagResponse is the data payload for DELETE /item/{item_id}/tag/{tag_id}.
// Item carries the tags still linked after the removal.
type UnlinkTagResponse struct {
	Message string       `json:"message"`
	Item    *domain.Item `json:"item"`
	Tag     *domain.Tag  `json:"tag"`
}

// UnlinkTagSuccessResponse is the success response envelope for DELETE /item/{item_id}/tag/{tag_id}.
type UnlinkTagSuccessResponse struct {
	Data  *UnlinkTagResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

const (
	msgTagRemoved    = "Tag removed from item"
	msgTagDeleted    = "Tag deleted."
	msgInternalError = "internal server error"
)

type TagController struct {
	Logger  *slog.Logger
	Service domain.TagService
	// ExposeInternalErrors echoes storage errors in the 500 body of tag creation.
	ExposeInternalErrors bool
}

func NewTagController(logger *slog.Logger, svc domain.TagService, exposeInternalErrors bool) *TagController {
	return &TagController{
		Logger:               logger,
		Service:              svc,
		ExposeInternalErrors: exposeInternalErrors,
	}
}

// ListStoreTags godoc
// @Summary List the tags of a store
// @Description Returns every tag of the store ordered by name. Requires authentication.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param store_id path int true "Store ID"
// @Success 200 {object} controllers.TagListSuccessResponse "data contains the store tags"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /store/{store_id}/tag [get]
func (c *TagController) ListStoreTags(w http.ResponseWriter, r *http.Request) {
	storeID, ok := helpers.PathID(w, r, "store_id")
	if !ok {
		return
	}
	tags, err := c.Service.ListStoreTags(r.Context(), storeID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tags)
}

// CreateStoreTag godoc
// @Summary Create a tag in a store
// @Description Creates a tag named by the body. Tag names are unique per store. Requires authentication.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param store_id path int true "Store ID"
// @Param tag body CreateTagRequest true "Tag data"
// @Success 201 {object} controllers.TagSuccessResponse "data contains the created tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /store/{store_id}/tag [post]
func (c *TagController) CreateStoreTag(w http.ResponseWriter, r *http.Request) {
	storeID, ok := helpers.PathID(w, r, "store_id")
	if !ok {
		return
	}
	var req CreateTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tag, err := c.Service.CreateTag(r.Context(), storeID, req.Name)
	if err != nil {
		internalMsg := ""
		if c.ExposeInternalErrors {
			internalMsg = err.Error()
		}
		c.writeError(w, r, err, internalMsg)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tag)
}

// LinkTagToItem godoc
// @Summary Add a tag to an item
// @Description Links the tag to the item. Both must belong to the same store. Linking twice is a no-op. Requires authentication.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} controllers.TagSuccessResponse "data contains the linked tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /item/{item_id}/tag/{tag_id} [post]
func (c *TagController) LinkTagToItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathID(w, r, "item_id")
	if !ok {
		return
	}
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	tag, err := c.Service.LinkTagToItem(r.Context(), itemID, tagID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// UnlinkTagFromItem godoc
// @Summary Remove a tag from an item
// @Description Unlinks the tag from the item and returns the item with its remaining tags. Requires authentication.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} controllers.UnlinkTagSuccessResponse "data contains message, item and tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /item/{item_id}/tag/{tag_id} [delete]
func (c *TagController) UnlinkTagFromItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathID(w, r, "item_id")
	if !ok {
		return
	}
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	item, tag, err := c.Service.UnlinkTagFromItem(r.Context(), itemID, tagID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UnlinkTagResponse{Message: msgTagRemoved, Item: item, Tag: tag})
}

// GetTag godoc
// @Summary Get a tag by ID
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} controllers.TagSuccessResponse "data contains the tag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tag/{tag_id} [get]
func (c *TagController) GetTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	tag, err := c.Service.GetTag(r.Context(), tagID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Deletes the tag. Fails with 400 while the tag is still linked to any item. Requires authentication.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tag_id path int true "Tag ID"
// @Success 202 {object} helpers.APIResponse "data.message: Tag deleted."
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tag/{tag_id} [delete]
func (c *TagController) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTag(r.Context(), tagID); err != nil {
		c.writeError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusAccepted, helpers.MessageResponse{Message: msgTagDeleted})
}

// ListTagItems godoc
// @Summary List the items linked to a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tag_id path int true "Tag ID"
// @Success 200 {object} controllers.ItemListSuccessResponse "data contains the linked items"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tag/{tag_id}/item [get]
func (c *TagController) ListTagItems(w http.ResponseWriter, r *http.Request) {
	tagID, ok := helpers.PathID(w, r, "tag_id")
	if !ok {
		return
	}
	items, err := c.Service.ListTagItems(r.Context(), tagID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	if items == nil {
		items = []*domain.Item{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ListItemTags godoc
// @Summary List the tags linked to an item
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param item_id path int true "Item ID"
// @Success 200 {object} controllers.TagListSuccessResponse "data contains the linked tags"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /item/{item_id}/tag [get]
func (c *TagController) ListItemTags(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathID(w, r, "item_id")
	if !ok {
		return
	}
	tags, err := c.Service.ListItemTags(r.Context(), itemID)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tags)
}

// writeError maps service errors to status codes. Unmapped errors are logged and
// answered with 500 using internalMsg, or a generic message when it is empty.
func (c *TagController) writeError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "tag already exists")
	case errors.Is(err, domain.ErrCrossStore):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "item and tag must belong to the same store")
	case errors.Is(err, domain.ErrTagInUse):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not delete tag, make sure tag is not associated with any item")
	case errors.Is(err, domain.ErrNotLinked):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tag is not linked to item")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		if internalMsg == "" {
			internalMsg = msgInternalError
		}
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, internalMsg)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrStoreNotFound):
		return "store not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item not found"
	case errors.Is(err, domain.ErrTagNotFound):
		return "tag not found"
	default:
		return "not found"
	}
}
