package domain

// Document is the whole persisted state. Every collection lives in the one
// JSON file; repositories load it, mutate it in memory and write it back.
type Document struct {
	Flights  []Flight     `json:"flights"`
	Hotels   []Hotel      `json:"hotels"`
	Places   []CityPlaces `json:"places"`
	Airlines []Airline    `json:"airlines"`
	Users    []User       `json:"users"`
}

// NewDocument returns an empty document with all collections allocated, so an
// empty store still serializes as {"flights":[],...} and not as nulls.
func NewDocument() *Document {
	return &Document{
		Flights:  []Flight{},
		Hotels:   []Hotel{},
		Places:   []CityPlaces{},
		Airlines: []Airline{},
		Users:    []User{},
	}
}

type Flight struct {
	ID            int64   `json:"id"`
	AirlineID     int64   `json:"airlineId,omitempty"`
	Airline       string  `json:"airline,omitempty"`
	FlightNumber  string  `json:"flightNumber,omitempty"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Date          string  `json:"date"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Price         float64 `json:"price"`
}

// Room is one inventory counter: available rooms of a type in a hotel.
// Quantity never goes below zero.
type Room struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

type Hotel struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Image          string `json:"image,omitempty"`
	AvailableRooms []Room `json:"availableRooms"`
}

type Place struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// CityPlaces groups points of interest under a city. Place lookups by id scan
// across all cities.
type CityPlaces struct {
	City   string  `json:"city"`
	Places []Place `json:"places"`
}

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // bcrypt hash; empty for google accounts
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`

	ResetTokenHash   string `json:"resetTokenHash,omitempty"`
	ResetTokenExpiry int64  `json:"resetTokenExpiry,omitempty"` // epoch millis

	Favorites     []Favorite     `json:"favorites"`
	BookedFlights []BookedFlight `json:"bookedFlights"`
	BookedHotels  []BookedHotel  `json:"bookedHotels"`
}

// Favorite references a flight or hotel the user starred. Unique per (id, type).
type Favorite struct {
	ID            int64   `json:"id"`
	Type          string  `json:"type"`
	Airline       string  `json:"airline,omitempty"`
	FlightNumber  string  `json:"flightNumber,omitempty"`
	From          string  `json:"from,omitempty"`
	To            string  `json:"to,omitempty"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Date          string  `json:"date,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Name          string  `json:"name,omitempty"`
	City          string  `json:"city,omitempty"`
}

// BookedFlight is a denormalized copy of the flight at booking time. Price
// holds the computed charge for this booking, not the flight's base price.
type BookedFlight struct {
	BookingID string `json:"bookingId"`
	Flight
	Adults   int   `json:"adults"`
	Children int   `json:"children"`
	BookedAt int64 `json:"bookedAt"`
}

// RoomCount is a booked quantity of a room type, replayed into the hotel's
// inventory on cancellation.
type RoomCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type BookedHotel struct {
	BookingID       string      `json:"bookingId"`
	HotelID         int64       `json:"hotelId"`
	HotelName       string      `json:"hotelName"`
	City            string      `json:"city"`
	Rooms           []RoomCount `json:"rooms"`
	TotalCost       float64     `json:"totalCost"`
	FullName        string      `json:"fullName,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	CheckIn         string      `json:"checkIn,omitempty"`
	CheckOut        string      `json:"checkOut,omitempty"`
	BookingDate     string      `json:"bookingDate"`
	DiscountApplied bool        `json:"discountApplied,omitempty"`
}
