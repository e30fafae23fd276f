package ui

// NavItem is a fixed navigation entry.
type NavItem struct {
	Label string
	Path  string
}

// DefaultNavItems returns the header navigation in display order.
func DefaultNavItems() []NavItem {
	return []NavItem{
		{Label: "Home", Path: "/"},
		{Label: "Breathe", Path: "/breathe"},
		{Label: "Meditations", Path: "/meditations"},
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Community", Path: "/community"},
	}
}

// NavLink is a NavItem resolved against the active route.
type NavLink struct {
	NavItem
	Active bool
}

// ActiveNav marks each item active iff its path equals route exactly.
// Prefixes, trailing slashes and query strings do not match.
func ActiveNav(items []NavItem, route string) []NavLink {
	out := make([]NavLink, len(items))
	for i, it := range items {
		out[i] = NavLink{NavItem: it, Active: it.Path == route}
	}
	return out
}
