package banners

import "github.com/hellolocalo/localo-backend/pkg/db/models"

// BannerView is the banner payload returned to clients.
type BannerView struct {
	ID         string  `json:"id"`
	Title      *string `json:"title,omitempty"`
	ImageURL   string  `json:"image_url"`
	TargetURL  *string `json:"target_url,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	VendorID   *string `json:"vendor_id,omitempty"`
	Position   int     `json:"position"`
	IsActive   bool    `json:"is_active"`
}

// CreateBannerInput captures the admin payload for a new banner.
type CreateBannerInput struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=200"`
	ImageURL   string  `json:"image_url" validate:"required,url"`
	TargetURL  *string `json:"target_url,omitempty" validate:"omitempty,url"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	VendorID   *string `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
	Position   *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}

// UpdateBannerInput captures the editable fields of an existing banner.
type UpdateBannerInput struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=200"`
	ImageURL   *string `json:"image_url,omitempty" validate:"omitempty,url"`
	TargetURL  *string `json:"target_url,omitempty" validate:"omitempty,url"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	VendorID   *string `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
	Position   *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func viewFromModel(row models.Banner) BannerView {
	view := BannerView{
		ID:        row.ID.String(),
		Title:     row.Title,
		ImageURL:  row.ImageURL,
		TargetURL: row.TargetURL,
		Position:  row.Position,
		IsActive:  row.IsActive,
	}
	if row.CategoryID != nil {
		id := row.CategoryID.String()
		view.CategoryID = &id
	}
	if row.VendorID != nil {
		id := row.VendorID.String()
		view.VendorID = &id
	}
	return view
}
