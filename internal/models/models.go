// package models defines the data model for the plant exchange client
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID is an opaque backend identifier.
//
// The backend issues UUID strings, but numeric IDs are accepted and kept in their decimal form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Timestamp decodes RFC 3339 times as well as the zone-less ISO 8601 form the backend emits for UTC datetimes.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON parses a JSON string timestamp. Zone-less values are treated as UTC.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// Identity is the resolved user record for the current credential.
type Identity struct {
	ID        ID        `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
}

// Plant is a listing as reported by GET /plants and GET /plants/my.
type Plant struct {
	ID            ID        `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	PhotoURL      string    `json:"photo_url"`
	OwnerID       ID        `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	LikesCount    int       `json:"likes_count"`
	LikedBy       []ID      `json:"liked_by"`
	CreatedAt     Timestamp `json:"created_at,omitzero"`
	LikedByUser   bool      `json:"is_liked_by_user"`

	// Likers is only populated on the owned-listings view.
	Likers []Liker `json:"-"`
}

// OwnedBy reports whether identity owns the listing.
func (p Plant) OwnedBy(identity Identity) bool {
	return identity.ID != "" && p.OwnerID == identity.ID
}

// FormatPrice renders the price the way the listing card shows it.
func (p Plant) FormatPrice() string {
	return "$" + strconv.FormatFloat(p.Price, 'f', -1, 64)
}

// Liker is a user who liked a listing.
type Liker struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// LikesSummary is the response of GET /plants/{id}/likes.
type LikesSummary struct {
	PlantID    ID      `json:"plant_id"`
	LikesCount int     `json:"likes_count"`
	LikedBy    []Liker `json:"liked_by"`
}

// Usernames returns the liker names in response order.
func Usernames(likers []Liker) []string {
	names := make([]string, len(likers))
	for i, l := range likers {
		names[i] = l.Username
	}
	return names
}

// NewPlant is the payload for POST /plants.
type NewPlant struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	PhotoURL    string  `json:"photo_url" validate:"required,url"`
}

// PlantDraft holds the creation form fields as typed. Price stays a string until submission.
type PlantDraft struct {
	Name        string
	Description string
	Price       string
	PhotoURL    string
}

// IsZero reports whether every field is empty.
func (d PlantDraft) IsZero() bool {
	return d == PlantDraft{}
}

// Coerce converts the draft into a [NewPlant], parsing the price as a decimal number.
func (d PlantDraft) Coerce() (NewPlant, error) {
	raw := strings.TrimSpace(d.Price)
	if raw == "" {
		return NewPlant{}, fmt.Errorf("price is required")
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return NewPlant{}, fmt.Errorf("price must be a number: %q", d.Price)
	}

	return NewPlant{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		PhotoURL:    strings.TrimSpace(d.PhotoURL),
	}, nil
}

// Credentials are the registration fields. Login only uses Username and Password.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by POST /register and POST /login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
