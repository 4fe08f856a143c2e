package model

import (
	"fmt"
	"strings"
)

// ViewMode selects the item layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"

	DefaultViewMode = ViewGrid
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewGrid:
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want grid or list)", s)
}

// Toggle flips between grid and list.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewList {
		return ViewGrid
	}
	return ViewList
}
