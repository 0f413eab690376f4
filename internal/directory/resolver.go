package directory

// ResolveVendors computes the approved vendor subset for a navigation
// state.
//
// A selected sub-category matches direct membership only: sub-category
// selection is treated as terminal even though the data model permits
// nested sub-categories. A selected category expands to its descendant
// closure and matches any intersection. With neither selected, every
// approved vendor is returned. Results preserve the directory's insertion
// order; no secondary sort is applied here.
func ResolveVendors(tree *CategoryTree, vendors *VendorDirectory, categoryID, subCategoryID string) []Vendor {
	approved := vendors.Approved()

	if subCategoryID != "" {
		var out []Vendor
		for _, vendor := range approved {
			if vendor.HasCategory(subCategoryID) {
				out = append(out, vendor)
			}
		}
		return out
	}

	if categoryID != "" {
		closure := make(map[string]struct{})
		for _, id := range tree.DescendantIDs(categoryID) {
			closure[id] = struct{}{}
		}
		var out []Vendor
		for _, vendor := range approved {
			if intersects(vendor.CategoryIDs, closure) {
				out = append(out, vendor)
			}
		}
		return out
	}

	return approved
}

func intersects(ids []string, closure map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := closure[id]; ok {
			return true
		}
	}
	return false
}
