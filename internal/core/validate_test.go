package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantNil bool
		wantErr bool
	}{
		{name: "plain integer", input: "12", want: "12.00"},
		{name: "two decimals", input: "12.50", want: "12.50"},
		{name: "rounds extra digits", input: "9.999", want: "10.00"},
		{name: "dollar sign", input: "$1,234.5", want: "1234.50"},
		{name: "euro sign", input: "€20", want: "20.00"},
		{name: "pound sign", input: "£7.25", want: "7.25"},
		{name: "surrounding spaces", input: "  3.10  ", want: "3.10"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "empty means no price", input: "", wantNil: true},
		{name: "whitespace means no price", input: "   ", wantNil: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "garbage rejected", input: "cheap", wantErr: true},
		{name: "lone symbol rejected", input: "$", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePrice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNormalizeItemInput(t *testing.T) {
	price := " $10 "
	in, err := normalizeItemInput(inventory.CreateItemInput{
		Description: "  Sweater  ",
		BinLocation: " Bin-1 ",
		Brand:       " Acme ",
		Price:       &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sweater", in.Description)
	assert.Equal(t, "Bin-1", in.BinLocation)
	assert.Equal(t, "Acme", in.Brand)
	require.NotNil(t, in.Price)
	assert.Equal(t, "10.00", *in.Price)

	t.Run("missing description", func(t *testing.T) {
		_, err := normalizeItemInput(inventory.CreateItemInput{BinLocation: "Bin-1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing bin location", func(t *testing.T) {
		_, err := normalizeItemInput(inventory.CreateItemInput{Description: "Sweater"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad price", func(t *testing.T) {
		bad := "free"
		_, err := normalizeItemInput(inventory.CreateItemInput{
			Description: "Sweater", BinLocation: "Bin-1", Price: &bad,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestNormalizeItemUpdate(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		_, err := normalizeItemUpdate(inventory.UpdateItemInput{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blanking required field rejected", func(t *testing.T) {
		blank := "   "
		_, err := normalizeItemUpdate(inventory.UpdateItemInput{Description: &blank})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("optional field may be blanked", func(t *testing.T) {
		blank := " "
		in, err := normalizeItemUpdate(inventory.UpdateItemInput{Notes: &blank})
		require.NoError(t, err)
		require.NotNil(t, in.Notes)
		assert.Equal(t, "", *in.Notes)
	})

	t.Run("price coerced", func(t *testing.T) {
		price := "$5"
		in, err := normalizeItemUpdate(inventory.UpdateItemInput{Price: &price})
		require.NoError(t, err)
		require.NotNil(t, in.Price)
		assert.Equal(t, "5.00", *in.Price)
	})
}
