package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/harbor/internal/domain"
)

// resolveItemID finds the item of collection c whose id equals input or,
// failing that, is the only id starting with it.
func resolveItemID(p *domain.PlanState, c domain.Collection, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item ID is required")
	}
	items := p.Items(c)

	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
	}

	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s item with ID %q", c.Label(), input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
