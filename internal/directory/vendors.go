package directory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a priced offering owned by a single vendor. Products have no
// independent identity; name is the implicit per-vendor key.
type Product struct {
	Name  string
	Price decimal.Decimal
	Image string
}

// Vendor is a service provider record. CategoryIDs may reference leaf or
// non-leaf nodes of the forest; dangling references are tolerated and
// simply never match a category filter.
type Vendor struct {
	ID               string
	Name             string
	Description      string
	Rating           float64
	Lat              float64
	Lng              float64
	Address          string
	Contact          string
	MaskedContact    string
	IsVerified       bool
	IsApproved       bool
	IsFeatured       bool
	ImageURL         string
	PriceStart       decimal.Decimal
	Email            string
	CategoryIDs      []string
	Products         []Product
	SupportsDelivery bool
}

// HasCategory reports direct membership of categoryID.
func (v Vendor) HasCategory(categoryID string) bool {
	for _, id := range v.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// VendorDirectory owns the vendor collection. Public consumers only ever
// see the approved view; admin surfaces read the full collection.
type VendorDirectory struct {
	vendors []Vendor
	index   map[string]int
}

// NewVendorDirectory returns an empty directory.
func NewVendorDirectory() *VendorDirectory {
	return &VendorDirectory{index: make(map[string]int)}
}

// Add appends the vendor, preserving insertion order. Adding an existing
// id updates the record in place without changing its position.
func (d *VendorDirectory) Add(vendor Vendor) {
	if vendor.ID == "" {
		return
	}
	if pos, exists := d.index[vendor.ID]; exists {
		d.vendors[pos] = vendor
		return
	}
	d.index[vendor.ID] = len(d.vendors)
	d.vendors = append(d.vendors, vendor)
}

// Remove deletes the vendor. Unknown ids are a no-op.
func (d *VendorDirectory) Remove(id string) {
	pos, exists := d.index[id]
	if !exists {
		return
	}
	d.vendors = append(d.vendors[:pos], d.vendors[pos+1:]...)
	delete(d.index, id)
	for i := pos; i < len(d.vendors); i++ {
		d.index[d.vendors[i].ID] = i
	}
}

// Approve flips the approval gate for id. Idempotent; unknown ids are a
// no-op.
func (d *VendorDirectory) Approve(id string) {
	if pos, exists := d.index[id]; exists {
		d.vendors[pos].IsApproved = true
	}
}

// UpdateProducts replaces the vendor's catalog. Unknown ids are a no-op.
func (d *VendorDirectory) UpdateProducts(id string, products []Product) {
	if pos, exists := d.index[id]; exists {
		d.vendors[pos].Products = products
	}
}

// Get returns the vendor record regardless of approval state.
func (d *VendorDirectory) Get(id string) (Vendor, bool) {
	if pos, exists := d.index[id]; exists {
		return d.vendors[pos], true
	}
	return Vendor{}, false
}

// All returns every vendor in insertion order. Admin view only.
func (d *VendorDirectory) All() []Vendor {
	out := make([]Vendor, len(d.vendors))
	copy(out, d.vendors)
	return out
}

// Approved returns the public view: approved vendors in insertion order.
func (d *VendorDirectory) Approved() []Vendor {
	var out []Vendor
	for _, vendor := range d.vendors {
		if vendor.IsApproved {
			out = append(out, vendor)
		}
	}
	return out
}

// Search returns approved vendors whose name, description, or any raw
// category id contains the query, case-insensitively. The match runs on
// the id string itself, not the category's display name.
func (d *VendorDirectory) Search(query string) []Vendor {
	needle := strings.ToLower(query)
	var out []Vendor
	for _, vendor := range d.Approved() {
		if vendorMatches(vendor, needle) {
			out = append(out, vendor)
		}
	}
	return out
}

func vendorMatches(vendor Vendor, needle string) bool {
	if strings.Contains(strings.ToLower(vendor.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(vendor.Description), needle) {
		return true
	}
	for _, id := range vendor.CategoryIDs {
		if strings.Contains(strings.ToLower(id), needle) {
			return true
		}
	}
	return false
}
