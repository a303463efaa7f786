package tasks

import "github.com/desertthunder/plantx/internal/models"

// LikersResult is one completed likers fetch from the owned-listings fan-out.
type LikersResult struct {
	PlantID models.ID
	Likers  []models.Liker
	Err     error
}

// Field identifies a creation form input.
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldPrice
	FieldPhotoURL
)

// Fields lists the creation form inputs in display order.
var Fields = []Field{FieldName, FieldDescription, FieldPrice, FieldPhotoURL}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDescription:
		return "description"
	case FieldPrice:
		return "price"
	case FieldPhotoURL:
		return "photo_url"
	default:
		return ""
	}
}

// Label is the prompt shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldDescription:
		return "Description"
	case FieldPrice:
		return "Price"
	case FieldPhotoURL:
		return "Photo URL"
	default:
		return ""
	}
}

// AuthMode selects between logging in and registering.
type AuthMode int

const (
	LoginMode AuthMode = iota
	RegisterMode
)

func (m AuthMode) String() string {
	switch m {
	case LoginMode:
		return "login"
	case RegisterMode:
		return "register"
	default:
		return ""
	}
}

// AuthField identifies an auth form input.
type AuthField int

const (
	AuthUsername AuthField = iota
	AuthEmail
	AuthPassword
)
