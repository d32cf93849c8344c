package domain

import (
	"github.com/google/uuid"
)

// DefaultDayName is the placeholder given to days created without a name.
const DefaultDayName = "Nouveau jour"

// Day is one dated unit of a trip.
// Currency is the day's input currency: the currency prices are typed in when
// an entry does not carry its own. Empty means the pivot currency.
type Day struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Date          Date          `json:"date"`
	Location      Location      `json:"location"`
	Image         string        `json:"image,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Accommodation Accommodation `json:"accommodation"`
	Food          Food          `json:"food"`
	Transports    []Transport   `json:"transports"`
	Activities    []Activity    `json:"activities"`
	GeneralInfo   GeneralInfo   `json:"general_info"`
}

// Location is a named place. Coordinates are nil until the user picks a
// geocoded suggestion.
type Location struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// HasCoordinates reports whether both lat and lon are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// AccommodationType is the kind of lodging.
type AccommodationType string

const (
	AccommodationHotel   AccommodationType = "hotel"
	AccommodationHouse   AccommodationType = "house"
	AccommodationTent    AccommodationType = "tent"
	AccommodationCaravan AccommodationType = "caravan"
)

// Valid reports whether t is empty or one of the known lodging kinds.
func (t AccommodationType) Valid() bool {
	switch t {
	case "", AccommodationHotel, AccommodationHouse, AccommodationTent, AccommodationCaravan:
		return true
	}
	return false
}

// Accommodation is where the traveller sleeps on a day.
type Accommodation struct {
	Name     string            `json:"name"`
	Type     AccommodationType `json:"type,omitempty"`
	Reserved bool              `json:"reserved"`
	Price    Price             `json:"price"`
	Currency string            `json:"currency,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	URL      string            `json:"url,omitempty"`
}

// Meal is one of the three daily meals.
type Meal struct {
	Price    Price  `json:"price"`
	Currency string `json:"currency,omitempty"`
	Count    int    `json:"count"`
}

// Quantity is the number of portions; anything below 1 counts as 1.
func (m Meal) Quantity() int {
	if m.Count < 1 {
		return 1
	}
	return m.Count
}

// Food holds the planned meals of a day.
type Food struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
}

// Meals returns breakfast, lunch and dinner in that order.
func (f Food) Meals() []Meal {
	return []Meal{f.Breakfast, f.Lunch, f.Dinner}
}

// GeneralInfo is the free-text planning area of a day.
type GeneralInfo struct {
	Planning string `json:"planning"`
}

// TransportType is the enumerated means of transport.
type TransportType string

const (
	TransportPlane    TransportType = "plane"
	TransportCar      TransportType = "car"
	TransportBus      TransportType = "bus"
	TransportSailboat TransportType = "sailboat"
	TransportShip     TransportType = "ship"
	TransportTram     TransportType = "tram"
	TransportCableCar TransportType = "cable_car"
	TransportTaxi     TransportType = "taxi"
)

// Valid reports whether t is one of the known transport types.
func (t TransportType) Valid() bool {
	switch t {
	case TransportPlane, TransportCar, TransportBus, TransportSailboat,
		TransportShip, TransportTram, TransportCableCar, TransportTaxi:
		return true
	}
	return false
}

// Transport is a planned journey leg. Count is at least 1.
type Transport struct {
	ID          uuid.UUID     `json:"id"`
	Type        TransportType `json:"type"`
	Description string        `json:"description"`
	Price       Price         `json:"price"`
	Currency    string        `json:"currency,omitempty"`
	Count       int           `json:"count"`
}

// Activity is a planned visit or outing. Count is at least 1.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	Currency    string    `json:"currency,omitempty"`
	Count       int       `json:"count"`
}

// DayUpdate is a partial update of a day. Nil fields are left untouched.
// Accommodation, Food and GeneralInfo are merged field by field.
// Transports and Activities, when set, replace the day's lists wholesale.
type DayUpdate struct {
	Name          *string             `json:"name,omitempty"`
	Date          *Date               `json:"date,omitempty"`
	Location      *Location           `json:"location,omitempty"`
	Image         *string             `json:"image,omitempty"`
	Currency      *string             `json:"currency,omitempty"`
	Accommodation *AccommodationPatch `json:"accommodation,omitempty"`
	Food          *FoodPatch          `json:"food,omitempty"`
	GeneralInfo   *GeneralInfoPatch   `json:"general_info,omitempty"`
	Transports    *[]Transport        `json:"transports,omitempty"`
	Activities    *[]Activity         `json:"activities,omitempty"`
}

// AccommodationPatch overwrites the non-nil accommodation fields.
type AccommodationPatch struct {
	Name     *string            `json:"name,omitempty"`
	Type     *AccommodationType `json:"type,omitempty"`
	Reserved *bool              `json:"reserved,omitempty"`
	Price    *Price             `json:"price,omitempty"`
	Currency *string            `json:"currency,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
	URL      *string            `json:"url,omitempty"`
}

// MealPatch overwrites the non-nil fields of one meal.
type MealPatch struct {
	Price    *Price  `json:"price,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Count    *int    `json:"count,omitempty"`
}

// FoodPatch patches each meal independently.
type FoodPatch struct {
	Breakfast *MealPatch `json:"breakfast,omitempty"`
	Lunch     *MealPatch `json:"lunch,omitempty"`
	Dinner    *MealPatch `json:"dinner,omitempty"`
}

// GeneralInfoPatch overwrites the non-nil general info fields.
type GeneralInfoPatch struct {
	Planning *string `json:"planning,omitempty"`
}

// ItemPatch is a partial update of a transport or an activity.
// Type is ignored for activities.
type ItemPatch struct {
	Type        *TransportType `json:"type,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *Price         `json:"price,omitempty"`
	Currency    *string        `json:"currency,omitempty"`
	Count       *int           `json:"count,omitempty"`
}
