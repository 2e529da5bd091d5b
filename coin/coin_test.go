package coin

import (
	"testing"

	"github.com/iov-one/sigvault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin": {
			coin: NewCoin(42, 0, "IOV"),
		},
		"valid negative coin": {
			coin: NewCoin(-42, -5, "IOV"),
		},
		"missing ticker": {
			coin:    NewCoin(1, 0, ""),
			wantErr: errors.ErrCurrency,
		},
		"lowercase ticker": {
			coin:    NewCoin(1, 0, "iov"),
			wantErr: errors.ErrCurrency,
		},
		"whole out of range": {
			coin:    NewCoin(MaxInt+1, 0, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"fractional out of range": {
			coin:    NewCoin(0, FracUnit, "IOV"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched sign": {
			coin:    Coin{Whole: 1, Fractional: -1, Ticker: "IOV"},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestCoinAddSubtract(t *testing.T) {
	a := NewCoin(1, 500000000, "IOV")
	b := NewCoin(2, 700000000, "IOV")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewCoin(4, 200000000, "IOV")))

	back, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, back.Equals(a))

	// different currencies cannot be combined
	_, err = a.Add(NewCoin(1, 0, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))

	// adding a zero value coin without ticker is a noop
	same, err := a.Add(Coin{})
	require.NoError(t, err)
	assert.True(t, same.Equals(a))
}

func TestCoinAddOverflow(t *testing.T) {
	max := NewCoin(MaxInt, 0, "IOV")
	_, err := max.Add(NewCoin(1, 0, "IOV"))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestCoinCompare(t *testing.T) {
	cases := map[string]struct {
		a, b Coin
		want int
	}{
		"greater whole":      {NewCoin(2, 0, "IOV"), NewCoin(1, 999999999, "IOV"), 1},
		"lesser whole":       {NewCoin(1, 0, "IOV"), NewCoin(2, 0, "IOV"), -1},
		"greater fractional": {NewCoin(1, 5, "IOV"), NewCoin(1, 4, "IOV"), 1},
		"equal":              {NewCoin(1, 5, "IOV"), NewCoin(1, 5, "IOV"), 0},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinSigns(t *testing.T) {
	assert.True(t, NewCoin(0, 1, "IOV").IsPositive())
	assert.False(t, NewCoin(0, 0, "IOV").IsPositive())
	assert.False(t, NewCoin(-1, 0, "IOV").IsPositive())
	assert.True(t, NewCoin(0, 0, "IOV").IsZero())
	assert.True(t, NewCoin(0, 0, "IOV").IsNonNegative())
	assert.False(t, NewCoin(0, -1, "IOV").IsNonNegative())
}

func TestCoinsAddAndContains(t *testing.T) {
	var cs Coins

	cs, err := cs.Add(NewCoin(10, 0, "IOV"))
	require.NoError(t, err)
	cs, err = cs.Add(NewCoin(5, 0, "ETH"))
	require.NoError(t, err)
	require.NoError(t, cs.Validate())

	// sorted by ticker
	assert.Equal(t, 2, cs.Count())
	assert.Equal(t, "ETH", cs[0].Ticker)
	assert.Equal(t, "IOV", cs[1].Ticker)

	assert.True(t, cs.Contains(NewCoin(10, 0, "IOV")))
	assert.True(t, cs.Contains(NewCoin(3, 0, "ETH")))
	assert.False(t, cs.Contains(NewCoin(11, 0, "IOV")))
	assert.False(t, cs.Contains(NewCoin(1, 0, "BTC")))

	// subtracting everything removes the currency
	cs, err = cs.Subtract(NewCoin(5, 0, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Count())
}

func TestCoinsClone(t *testing.T) {
	cs := Coins{NewCoinp(1, 0, "IOV")}
	dup := cs.Clone()
	require.True(t, cs.Equals(dup))

	dup[0].Whole = 77
	assert.False(t, cs.Equals(dup))
}
