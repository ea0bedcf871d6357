package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), BRL)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, BRL, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(30))
		b := NewMoneyBRL(decimal.NewFromInt(50))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(80)))
	})

	t.Run("add different currency fails", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(30))
		b, _ := NewMoney(decimal.NewFromInt(50), USD)

		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(80))
		b := NewMoneyBRL(decimal.NewFromInt(30))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("divide by zero fails", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(80))
		_, err := a.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("percentage", func(t *testing.T) {
		a := NewMoneyBRL(decimal.NewFromInt(200))
		p := a.CalculatePercentage(decimal.NewFromInt(10))
		assert.True(t, p.Amount().Equal(decimal.NewFromInt(20)))
	})
}

func TestMoney_Allocate(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		parts  int
		want   []string
	}{
		{"even split", "100.00", 2, []string{"50", "50"}},
		{"uneven split carries cents", "100.00", 3, []string{"33.34", "33.33", "33.33"}},
		{"single part", "99.99", 1, []string{"99.99"}},
		{"two cents remainder", "0.05", 3, []string{"0.02", "0.02", "0.01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyBRLFromString(tt.amount)
			require.NoError(t, err)

			parts, err := m.Allocate(tt.parts)
			require.NoError(t, err)
			require.Len(t, parts, tt.parts)

			sum := ZeroBRL()
			for i, p := range parts {
				expected, _ := decimal.NewFromString(tt.want[i])
				assert.True(t, p.Amount().Equal(expected), "part %d: got %s want %s", i, p.Amount(), expected)
				sum = sum.MustAdd(p)
			}
			assert.True(t, sum.Equals(m), "allocated parts must sum to the original amount")
		})
	}

	t.Run("rejects non-positive parts", func(t *testing.T) {
		m := NewMoneyBRL(decimal.NewFromInt(10))
		_, err := m.Allocate(0)
		assert.Error(t, err)
	})
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string amount with default currency", func(t *testing.T) {
		var m Money
		err := m.Scan("123.45")
		require.NoError(t, err)
		assert.Equal(t, "123.45", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		err := m.Scan(nil)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})
}
