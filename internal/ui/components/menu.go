package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/pytutor/internal/ui/theme"
)

// MenuItem represents a single numbered menu entry.
type MenuItem struct {
	Label    string
	Disabled bool
}

// Menu is a numbered vertical menu read from a line of input.
type Menu struct {
	Items []MenuItem
}

// NewMenu creates a new menu with the given items.
func NewMenu(items ...MenuItem) Menu {
	return Menu{Items: items}
}

// Labels builds a menu from plain labels.
func Labels(labels ...string) Menu {
	items := make([]MenuItem, len(labels))
	for i, l := range labels {
		items[i] = MenuItem{Label: l}
	}
	return Menu{Items: items}
}

// Choose maps a line of input to an item index. Input is a 1-based number
// or an item label, ignoring case. Disabled items cannot be chosen.
func (m Menu) Choose(input string) (int, bool) {
	input = strings.TrimSpace(input)
	idx := -1
	if n, err := strconv.Atoi(input); err == nil {
		idx = n - 1
	} else {
		for i, item := range m.Items {
			if strings.EqualFold(item.Label, input) {
				idx = i
				break
			}
		}
	}
	if idx < 0 || idx >= len(m.Items) || m.Items[idx].Disabled {
		return -1, false
	}
	return idx, true
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		line := fmt.Sprintf("  %d. %s", i+1, item.Label)
		if item.Disabled {
			s += theme.Locked.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
