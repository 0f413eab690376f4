package auth

import (
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
)

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=200"`
}

// RefreshInput carries the expired access token plus its refresh token.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterUserInput creates an operator account, optionally bound to a
// vendor profile.
type RegisterUserInput struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8,max=200"`
	Name     string         `json:"name" validate:"required,min=2,max=120"`
	Role     enums.UserRole `json:"role" validate:"required"`
	VendorID *string        `json:"vendor_id,omitempty" validate:"omitempty,uuid"`
}

// UserView is the account payload returned to clients.
type UserView struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Role     enums.UserRole `json:"role"`
	VendorID *string        `json:"vendor_id,omitempty"`
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserView `json:"user"`
}

func userViewFromModel(user models.User) UserView {
	view := UserView{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	if user.VendorID != nil {
		id := user.VendorID.String()
		view.VendorID = &id
	}
	return view
}
