// Package templates renders the dashboard's HTML pages as templ components.
//
// Components are written in *.templ files; the *_templ.go files are
// generated with `templ generate` and committed alongside them.
package templates

// NavItem is one entry of the page navigation.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Nav returns the navigation with the item at href marked active.
func Nav(href string) []NavItem {
	items := []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "Orders", Href: "/orders"},
		{Label: "Drivers", Href: "/drivers"},
		{Label: "Restaurants", Href: "/restaurants"},
	}
	for i := range items {
		items[i].Active = items[i].Href == href
	}
	return items
}

// DatasetSummary is the snapshot information shown on every page.
type DatasetSummary struct {
	Source   string
	LoadedAt string
	Total    int
	Dropped  int
	Records  int
	First    string
	Last     string
}

// FilterState echoes the active filter back into the form.
type FilterState struct {
	Cutoff  string
	Traffic []string
	Options []string
}

// Selected reports whether the traffic density is part of the active filter.
func (f FilterState) Selected(option string) bool {
	for _, t := range f.Traffic {
		if t == option {
			return true
		}
	}
	return false
}

// TableLink points at one registered aggregation table.
type TableLink struct {
	Key   string
	Label string
}

// TableGroup lists the tables of one dashboard view.
type TableGroup struct {
	Name   string
	Href   string
	Tables []TableLink
}

// DataTable is one rendered aggregation. Records holds the header row first.
// Err is set instead when the table could not be built for the filter.
type DataTable struct {
	Key     string
	Label   string
	Records [][]string
	Err     string
}
