package vendors

import (
	"strings"

	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Location is the denormalized position block returned to clients.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// ProductView is the embedded catalog entry in vendor payloads.
type ProductView struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// VendorView is the public vendor payload. Contact is always the masked
// form; the raw contact never leaves admin surfaces.
type VendorView struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Rating           float64         `json:"rating"`
	Location         Location        `json:"location"`
	Contact          string          `json:"contact,omitempty"`
	IsVerified       bool            `json:"is_verified"`
	ImageURL         string          `json:"image_url,omitempty"`
	PriceStart       decimal.Decimal `json:"price_start"`
	CategoryIDs      []string        `json:"category_ids,omitempty"`
	Products         []ProductView   `json:"products,omitempty"`
	SupportsDelivery bool            `json:"supports_delivery"`
}

// AdminVendorView extends the public payload with moderation fields.
type AdminVendorView struct {
	VendorView
	RawContact string `json:"raw_contact,omitempty"`
	Email      string `json:"email,omitempty"`
	IsApproved bool   `json:"is_approved"`
	IsFeatured bool   `json:"is_featured"`
}

// ListFilter captures the public navigation state.
type ListFilter struct {
	CategoryID    string
	SubCategoryID string
	Search        string
}

// RegisterVendorInput is the self-registration payload. Registrations
// always start unapproved.
type RegisterVendorInput struct {
	Name             string   `json:"name" validate:"required,min=2,max=160"`
	Description      string   `json:"description" validate:"max=1000"`
	Contact          string   `json:"contact" validate:"required,min=5,max=40"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Address          string   `json:"address" validate:"max=300"`
	Lat              *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng              *float64 `json:"lng" validate:"omitempty,longitude"`
	PriceStart       *string  `json:"price_start" validate:"omitempty"`
	ImageURL         string   `json:"image_url" validate:"omitempty,url"`
	CategoryIDs      []string `json:"category_ids" validate:"dive,uuid"`
	SupportsDelivery bool     `json:"supports_delivery"`
}

// CreateVendorInput is the admin direct-add payload.
type CreateVendorInput struct {
	RegisterVendorInput
	Approved bool `json:"approved"`
	Verified bool `json:"verified"`
	Featured bool `json:"featured"`
}

// UpdateVendorInput captures admin-editable vendor fields.
type UpdateVendorInput struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,min=2,max=160"`
	Description      *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Contact          *string  `json:"contact,omitempty" validate:"omitempty,min=5,max=40"`
	Address          *string  `json:"address,omitempty" validate:"omitempty,max=300"`
	Lat              *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng              *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Rating           *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ImageURL         *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Verified         *bool    `json:"verified,omitempty"`
	Featured         *bool    `json:"featured,omitempty"`
	SupportsDelivery *bool    `json:"supports_delivery,omitempty"`
	CategoryIDs      []string `json:"category_ids,omitempty" validate:"dive,uuid"`
}

// MaskContact hides all but the last two characters of a phone contact.
func MaskContact(contact string) string {
	trimmed := strings.TrimSpace(contact)
	if len(trimmed) <= 2 {
		return trimmed
	}
	return strings.Repeat("*", len(trimmed)-2) + trimmed[len(trimmed)-2:]
}

func directoryVendorFromModel(row models.Vendor) directory.Vendor {
	vendor := directory.Vendor{
		ID:               row.ID.String(),
		Name:             row.Name,
		Rating:           row.Rating,
		IsVerified:       row.IsVerified,
		IsApproved:       row.IsApproved,
		IsFeatured:       row.IsFeatured,
		SupportsDelivery: row.SupportsDelivery,
	}
	if row.Description != nil {
		vendor.Description = *row.Description
	}
	if row.ImageURL != nil {
		vendor.ImageURL = *row.ImageURL
	}
	if row.ContactPhone != nil {
		vendor.Contact = *row.ContactPhone
		vendor.MaskedContact = MaskContact(*row.ContactPhone)
	}
	if row.Email != nil {
		vendor.Email = *row.Email
	}
	if row.Address != nil {
		vendor.Address = *row.Address
	}
	if row.Lat != nil {
		vendor.Lat = *row.Lat
	}
	if row.Lng != nil {
		vendor.Lng = *row.Lng
	}
	if row.PriceStart != nil {
		vendor.PriceStart = *row.PriceStart
	}
	for _, category := range row.Categories {
		vendor.CategoryIDs = append(vendor.CategoryIDs, category.ID.String())
	}
	return vendor
}

func publicViewFromDirectory(vendor directory.Vendor) VendorView {
	view := VendorView{
		ID:          vendor.ID,
		Name:        vendor.Name,
		Description: vendor.Description,
		Rating:      vendor.Rating,
		Location: Location{
			Lat:     vendor.Lat,
			Lng:     vendor.Lng,
			Address: vendor.Address,
		},
		Contact:          vendor.MaskedContact,
		IsVerified:       vendor.IsVerified,
		ImageURL:         vendor.ImageURL,
		PriceStart:       vendor.PriceStart,
		CategoryIDs:      vendor.CategoryIDs,
		SupportsDelivery: vendor.SupportsDelivery,
	}
	for _, product := range vendor.Products {
		view.Products = append(view.Products, ProductView{
			Name:  product.Name,
			Price: product.Price,
			Image: product.Image,
		})
	}
	return view
}

func adminViewFromModel(row models.Vendor) AdminVendorView {
	vendor := directoryVendorFromModel(row)
	view := AdminVendorView{
		VendorView: publicViewFromDirectory(vendor),
		RawContact: vendor.Contact,
		Email:      vendor.Email,
		IsApproved: row.IsApproved,
		IsFeatured: row.IsFeatured,
	}
	return view
}
