package specstitch

// PageRef identifies one crawlable page in the site navigation.
type PageRef struct {
	Slug        string
	Title       string
	IsReference bool
}

// RefGroup is an ordered group of reference pages from the sidebar.
type RefGroup struct {
	Title string
	Pages []PageRef
}

// Navigation is the crawl structure read from the start page's props.
type Navigation struct {
	// Refs holds the reference groups in sidebar order. Crawl order is
	// group order, then page order within each group.
	Refs []RefGroup

	// NonReference is the set of slugs marked non-reference anywhere in
	// the primary documentation tree. These are grouping/navigation pages
	// whose slugs are reused by the reference sidebar and must never be
	// fetched as standalone reference pages.
	NonReference map[string]bool
}

// Pages returns the total number of candidate pages across all groups.
func (n *Navigation) Pages() int {
	var total int
	for _, g := range n.Refs {
		total += len(g.Pages)
	}
	return total
}

// ParseNavigation reads the sidebar structure from a start page's props.
// Returns EEXTRACT if the props carry no reference sidebar, which makes a
// crawl impossible.
func ParseNavigation(props map[string]any) (*Navigation, error) {
	sidebars, ok := props["sidebars"].(map[string]any)
	if !ok {
		return nil, Errorf(EEXTRACT, "props missing sidebars section")
	}

	refs, ok := sidebars["refs"].([]any)
	if !ok {
		return nil, Errorf(EEXTRACT, "sidebars missing refs section")
	}

	nav := &Navigation{
		NonReference: make(map[string]bool),
	}

	for _, g := range refs {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		nav.Refs = append(nav.Refs, RefGroup{
			Title: stringField(group, "title"),
			Pages: parsePages(group),
		})
	}

	// The docs sidebar is the primary documentation tree; any page not
	// flagged as a reference there is excluded from the crawl set.
	if docs, ok := sidebars["docs"].([]any); ok {
		for _, g := range docs {
			group, ok := g.(map[string]any)
			if !ok {
				continue
			}
			for _, page := range parsePages(group) {
				if !page.IsReference {
					nav.NonReference[page.Slug] = true
				}
			}
		}
	}

	return nav, nil
}

// parsePages reads the pages list of a sidebar group.
func parsePages(group map[string]any) []PageRef {
	list, ok := group["pages"].([]any)
	if !ok {
		return nil
	}

	var pages []PageRef
	for _, p := range list {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		isRef, _ := page["isReference"].(bool)
		pages = append(pages, PageRef{
			Slug:        stringField(page, "slug"),
			Title:       stringField(page, "title"),
			IsReference: isRef,
		})
	}
	return pages
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
