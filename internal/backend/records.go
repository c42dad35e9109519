package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"grainmgr/cli/internal/transport"
)

// Collection is a listable backend resource.
type Collection string

const (
	Depots    Collection = "depots"
	Granaries Collection = "granaries"
	Users     Collection = "users"
)

// collectionPaths mirror the backend's route declarations, trailing slash included.
var collectionPaths = map[Collection]string{
	Depots:    "/depots/",
	Granaries: "/granaries",
	Users:     "/users/",
}

// DefaultLimit is the backend's own page size default.
const DefaultLimit = 100

// Page selects a window of a collection.
type Page struct {
	Skip  int
	Limit int
}

// Record is one untyped item of a collection.
type Record map[string]any

// List fetches one page of c.
func (h *HTTP) List(ctx context.Context, c Collection, page Page) ([]Record, error) {
	p, ok := collectionPaths[c]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	if page.Limit <= 0 {
		page.Limit = DefaultLimit
	}
	if page.Skip < 0 {
		page.Skip = 0
	}
	req := transport.Get(p).WithQuery(url.Values{
		"skip":  {strconv.Itoa(page.Skip)},
		"limit": {strconv.Itoa(page.Limit)},
	})
	payload, err := h.t.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	var out []Record
	if err := payload.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	return out, nil
}
