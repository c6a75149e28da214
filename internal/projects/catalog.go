// Package projects holds the project gallery: a fixed catalog, its sortable
// view order, and the deadline-derived status shown on each card.
package projects

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

type Project struct {
	Title       string
	Description string
	Deadline    time.Time
	ImageSrc    string
	ImageAlt    string
}

func (p Project) HasImage() bool {
	return p.ImageSrc != ""
}

type SortMode int

const (
	SortNone SortMode = iota
	SortEarliest
	SortLatest
)

func (m SortMode) String() string {
	switch m {
	case SortEarliest:
		return "earliest"
	case SortLatest:
		return "latest"
	default:
		return "none"
	}
}

// Next cycles none -> earliest -> latest -> none.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// ParseSortMode accepts the selector values; "" means none.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "earliest":
		return SortEarliest, nil
	case "latest":
		return SortLatest, nil
	}
	return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}

// Catalog keeps projects in insertion order and derives a view order from
// the current sort mode. Sorting works on a copy, so original always holds
// the insertion order that SortNone restores.
type Catalog struct {
	original []Project
	view     []Project
	mode     SortMode
}

func NewCatalog(projects []Project) *Catalog {
	c := &Catalog{original: slices.Clone(projects)}
	c.view = slices.Clone(c.original)
	return c
}

// SetSortMode recomputes the view order. Both directions use a stable sort,
// so projects sharing a deadline keep their catalog order.
func (c *Catalog) SetSortMode(mode SortMode) {
	c.mode = mode
	switch mode {
	case SortEarliest:
		c.view = slices.Clone(c.original)
		slices.SortStableFunc(c.view, func(a, b Project) int {
			return a.Deadline.Compare(b.Deadline)
		})
	case SortLatest:
		c.view = slices.Clone(c.original)
		slices.SortStableFunc(c.view, func(a, b Project) int {
			return b.Deadline.Compare(a.Deadline)
		})
	default:
		c.view = slices.Clone(c.original)
	}
}

func (c *Catalog) Mode() SortMode {
	return c.mode
}

// ViewOrder returns a copy of the currently displayed order.
func (c *Catalog) ViewOrder() []Project {
	return slices.Clone(c.view)
}

func (c *Catalog) Len() int {
	return len(c.original)
}
