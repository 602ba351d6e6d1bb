//go:build unit || e2e

package builder

import (
	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/internal/usecase/queries"
)

type StadiumBuilder struct {
	ID             int64
	Name           string
	City           string
	Region         string
	PlayerCapacity int
	Price          float64
}

func NewStadiumBuilder() *StadiumBuilder {
	return &StadiumBuilder{
		ID:             2,
		Name:           "Uhuru Arena",
		City:           "Dar es Salaam",
		Region:         "Ilala",
		PlayerCapacity: 22,
		Price:          50000,
	}
}

func (b *StadiumBuilder) With(mutate func(*StadiumBuilder)) *StadiumBuilder {
	mutate(b)
	return b
}

func (b *StadiumBuilder) WithID(id int64) *StadiumBuilder {
	b.ID = id
	return b
}

func (b *StadiumBuilder) BuildDomain() (*stadium.Stadium, error) {
	return stadium.NewStadium(b.ID, b.Name, stadium.Location{City: b.City, Region: b.Region}, b.PlayerCapacity, b.Price)
}

func (b *StadiumBuilder) MustDomain() *stadium.Stadium {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *StadiumBuilder) BuildView() queries.StadiumView {
	return queries.ToStadiumView(b.MustDomain())
}

// BuildCatalog returns stadiums 1..n named after the default builder.
func BuildCatalog(n int) *stadium.Catalog {
	list := make([]*stadium.Stadium, 0, n)
	for i := 1; i <= n; i++ {
		list = append(list, NewStadiumBuilder().WithID(int64(i)).MustDomain())
	}
	return stadium.NewCatalog(list)
}
