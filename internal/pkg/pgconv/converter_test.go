//go:build unit

package pgconv

import (
	"math/big"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalFromNumeric(t *testing.T) {
	t.Run("keeps scale exactly", func(t *testing.T) {
		got, err := DecimalFromNumeric(pgtype.Numeric{Int: big.NewInt(1999), Exp: -2, Valid: true})
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("null is rejected", func(t *testing.T) {
		_, err := DecimalFromNumeric(pgtype.Numeric{})
		assert.ErrorIs(t, err, ErrNullNumeric)
	})

	t.Run("round trips through NumericFromDecimal", func(t *testing.T) {
		in := decimal.RequireFromString("1234.5678")
		got, err := DecimalFromNumeric(NumericFromDecimal(in))
		require.NoError(t, err)
		assert.True(t, got.Equal(in))
	})
}

func TestDateConversion(t *testing.T) {
	d := civil.Date{Year: 2024, Month: 2, Day: 29}

	got, err := DateFromPgtype(DateToPgtype(d))
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = DateFromPgtype(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.False(t, IsNoRows(ErrNullNumeric))
}
