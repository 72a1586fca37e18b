package geo

import (
	"errors"
	"testing"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	valid := Address{Street: "1 Woodward Ave", City: "Detroit", State: "MI", Zip: "48226"}

	tests := []struct {
		name    string
		addr    Address
		wantErr error
	}{
		{name: "valid", addr: valid},
		{name: "zip plus four", addr: Address{Street: "1 Main", City: "Troy", State: "MI", Zip: "48084-1234"}},
		{name: "lower case state is normalized", addr: Address{Street: "1 Main", City: "Troy", State: " mi ", Zip: "48084"}},
		{name: "missing street", addr: Address{City: "Detroit", State: "MI", Zip: "48226"}, wantErr: ErrAddressIncomplete},
		{name: "blank city", addr: Address{Street: "1 Main", City: "   ", State: "MI", Zip: "48226"}, wantErr: ErrAddressIncomplete},
		{name: "canadian province", addr: Address{Street: "1 Main", City: "Windsor", State: "ON", Zip: "48226"}, wantErr: ErrUnsupportedState},
		{name: "territory is not a state", addr: Address{Street: "1 Main", City: "San Juan", State: "PR", Zip: "00901"}, wantErr: ErrUnsupportedState},
		{name: "full state name", addr: Address{Street: "1 Main", City: "Detroit", State: "Michigan", Zip: "48226"}, wantErr: ErrUnsupportedState},
		{name: "short zip", addr: Address{Street: "1 Main", City: "Detroit", State: "MI", Zip: "4822"}, wantErr: ErrInvalidZip},
		{name: "letters in zip", addr: Address{Street: "1 Main", City: "Detroit", State: "MI", Zip: "4822A"}, wantErr: ErrInvalidZip},
		{name: "bad plus four", addr: Address{Street: "1 Main", City: "Detroit", State: "MI", Zip: "48226-12"}, wantErr: ErrInvalidZip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidateAddressReportsMissingFields(t *testing.T) {
	err := ValidateAddress(Address{State: "MI"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]any{"missing_fields": []string{"street", "city", "zip"}}, appErr.Details)
}
