package model

import "strconv"

// NotAvailable marks a venue field the details lookup did not return.
const NotAvailable = "N/A"

// Columns is the fixed export schema, in column order.
var Columns = []string{"name", "address", "phone", "rating"}

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Venue is a food venue that qualified for export.
type Venue struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Rating  *float64 `json:"rating,omitempty"`
}

// NewVenue builds a Venue, substituting NotAvailable for empty text fields.
// A zero rating is treated as absent; the upstream omits rating for unrated places.
func NewVenue(name, address, phone string, rating float64) Venue {
	v := Venue{
		Name:    orNotAvailable(name),
		Address: orNotAvailable(address),
		Phone:   orNotAvailable(phone),
	}
	if rating != 0 {
		r := rating
		v.Rating = &r
	}
	return v
}

// RatingString returns the rating as text, or NotAvailable.
func (v Venue) RatingString() string {
	if v.Rating == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v.Rating, 'f', -1, 64)
}

// Row returns the venue's cells in Columns order.
func (v Venue) Row() []string {
	return []string{v.Name, v.Address, v.Phone, v.RatingString()}
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
