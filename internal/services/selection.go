package services

import "restaurant-map-service/internal/domain"

// SelectionController tracks the single restaurant shown in the detail popup.
// Selecting a new id implicitly replaces the previous one. Ids are resolved
// against the store on every read, so a replaced working set is seen at once.
type SelectionController struct {
	store    *RestaurantStore
	activeID string
}

func NewSelectionController(store *RestaurantStore) *SelectionController {
	return &SelectionController{store: store}
}

// Select makes id active if it exists in the store. Unknown ids are ignored
// and reported with false.
func (c *SelectionController) Select(id string) bool {
	if _, ok := c.store.Find(id); !ok {
		return false
	}
	c.activeID = id
	return true
}

func (c *SelectionController) Clear() { c.activeID = "" }

func (c *SelectionController) ActiveID() string { return c.activeID }

// Active resolves the active id against the store. A stale id resolves to none.
func (c *SelectionController) Active() (domain.Restaurant, bool) {
	if c.activeID == "" {
		return domain.Restaurant{}, false
	}
	return c.store.Find(c.activeID)
}

// Prune clears the selection when its id is no longer in the store.
// It reports whether the selection was dropped.
func (c *SelectionController) Prune() bool {
	if c.activeID == "" {
		return false
	}
	if _, ok := c.Active(); ok {
		return false
	}
	c.activeID = ""
	return true
}
