package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Cart      Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt time.Time `json:"created_at"`
}

// Address model embedded in User and in Order shipping details
type Address struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// DefaultCountry is applied when a shipping address omits the country.
const DefaultCountry = "India"

// Validate checks that all required shipping fields are present and fills
// the country default.
func (a *Address) Validate() []string {
	var missing []string
	if a.FullName == "" {
		missing = append(missing, "full_name")
	}
	if a.Street == "" {
		missing = append(missing, "street")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.PostalCode == "" {
		missing = append(missing, "postal_code")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return missing
}
