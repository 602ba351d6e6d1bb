//go:build unit

package booking_test

import (
	"errors"
	"testing"

	"arenahub-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact(t *testing.T) {
	t.Run("normalises input", func(t *testing.T) {
		c := booking.NewContact("  Asha Mwangi ", " +255", "712 345-678", " asha@example.com ")

		assert.Equal(t, "Asha Mwangi", c.Name)
		assert.Equal(t, "+255", c.CountryPrefix)
		assert.Equal(t, "712345678", c.Phone)
		assert.Equal(t, "asha@example.com", c.Email)
		assert.Equal(t, "+255712345678", c.FullPhone())
		require.NoError(t, c.Validate())
	})

	cases := []struct {
		name    string
		contact booking.Contact
		fields  []string
	}{
		{
			name:    "phone too short",
			contact: booking.NewContact("Asha", "+255", "71234567", "asha@example.com"),
			fields:  []string{"phone"},
		},
		{
			name:    "phone too long",
			contact: booking.NewContact("Asha", "+255", "7123456789", "asha@example.com"),
			fields:  []string{"phone"},
		},
		{
			name:    "phone with letters",
			contact: booking.NewContact("Asha", "+255", "71234567a", "asha@example.com"),
			fields:  []string{"phone"},
		},
		{
			name:    "unsupported prefix",
			contact: booking.NewContact("Asha", "+1", "712345678", "asha@example.com"),
			fields:  []string{"countryPrefix"},
		},
		{
			name:    "malformed email",
			contact: booking.NewContact("Asha", "+255", "712345678", "asha.example.com"),
			fields:  []string{"email"},
		},
		{
			name:    "whitespace name",
			contact: booking.NewContact("   ", "+254", "712345678", "asha@example.com"),
			fields:  []string{"name"},
		},
		{
			name:    "everything missing",
			contact: booking.Contact{},
			fields:  []string{"name", "countryPrefix", "phone", "email"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.contact.Validate()
			require.ErrorIs(t, err, booking.ErrValidation)

			var verr *booking.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(c.fields))
			for _, f := range c.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestCountries(t *testing.T) {
	countries := booking.Countries()
	require.NotEmpty(t, countries)
	assert.Equal(t, "+255", countries[0].Prefix)

	c, ok := booking.LookupCountryPrefix("+254")
	assert.True(t, ok)
	assert.Equal(t, "KE", c.Code)

	_, ok = booking.LookupCountryPrefix("+44")
	assert.False(t, ok)
}
