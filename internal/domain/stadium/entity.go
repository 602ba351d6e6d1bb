package stadium

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStadiumID  = errors.New("stadium id must be positive")
	ErrEmptyStadiumName  = errors.New("stadium name cannot be empty")
	ErrNegativeCapacity  = errors.New("player capacity cannot be negative")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrStadiumNotFound   = errors.New("stadium not found")
	ErrNoStadiumSelected = errors.New("no stadium selected")
)

const Currency = "TZS"

type Location struct {
	City   string
	Region string
}

func (l Location) String() string {
	switch {
	case l.City == "":
		return l.Region
	case l.Region == "":
		return l.City
	default:
		return l.City + ", " + l.Region
	}
}

// Stadium is immutable once fetched from the backend catalog.
type Stadium struct {
	id             int64
	name           string
	location       Location
	playerCapacity int
	price          float64
}

func NewStadium(id int64, name string, location Location, playerCapacity int, price float64) (*Stadium, error) {
	if id <= 0 {
		return nil, ErrInvalidStadiumID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyStadiumName
	}
	if playerCapacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}

	return &Stadium{
		id:             id,
		name:           name,
		location:       location,
		playerCapacity: playerCapacity,
		price:          price,
	}, nil
}

func (s *Stadium) ID() int64           { return s.id }
func (s *Stadium) Name() string        { return s.name }
func (s *Stadium) Location() Location  { return s.location }
func (s *Stadium) PlayerCapacity() int { return s.playerCapacity }
func (s *Stadium) Price() float64      { return s.price }

// PriceLabel renders the price with two decimals, e.g. "TZS - 50000.00".
func (s *Stadium) PriceLabel() string {
	return fmt.Sprintf("%s - %.2f", Currency, s.price)
}

// Catalog is the list of stadiums fetched on page load.
type Catalog struct {
	stadiums []*Stadium
}

func NewCatalog(stadiums []*Stadium) *Catalog {
	return &Catalog{stadiums: stadiums}
}

func (c *Catalog) All() []*Stadium {
	out := make([]*Stadium, len(c.stadiums))
	copy(out, c.stadiums)
	return out
}

func (c *Catalog) Len() int {
	return len(c.stadiums)
}

func (c *Catalog) Find(id int64) (*Stadium, error) {
	for _, s := range c.stadiums {
		if s.id == id {
			return s, nil
		}
	}
	return nil, ErrStadiumNotFound
}
