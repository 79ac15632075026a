package menu

// Entry is a single dish on the menu.
type Entry struct {
	Category Category
	Name     string
}

// Catalog is the full list of entries from one scrape, in document order.
// Names are not unique.
type Catalog []Entry

// BuildCatalog classifies extracted sections. The first heading that does
// not classify aborts the build with an *UnknownCategoryError, even when its
// section holds no items, so a partial catalog is never returned.
func BuildCatalog(sections []Section) (Catalog, error) {
	var catalog Catalog
	for _, s := range sections {
		c := Classify(s.Label)
		if c == CategoryUnknown {
			return nil, &UnknownCategoryError{Label: s.Label}
		}
		for _, name := range s.Items {
			catalog = append(catalog, Entry{Category: c, Name: name})
		}
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return catalog, nil
}

// CountByCategory returns how many entries each category holds.
func (c Catalog) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, e := range c {
		counts[e.Category]++
	}
	return counts
}
