package sigvault_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := sigvault.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := sigvault.NewCondition("abc", "def", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldEqual, "abc/def/414243443132333435364C4842")
	})
}

func TestNewAddress(t *testing.T) {
	if sigvault.NewAddress(nil) != nil {
		t.Fatal("hashing nil data must return a nil address")
	}

	addr := sigvault.NewAddress([]byte("some data"))
	require.NoError(t, addr.Validate())
	assert.Len(t, []byte(addr), sigvault.AddressLength)

	// The digest must be deterministic.
	assert.Equal(t, addr, sigvault.NewAddress([]byte("some data")))
	assert.NotEqual(t, addr, sigvault.NewAddress([]byte("other data")))
}

func TestConditionParse(t *testing.T) {
	cond := sigvault.NewCondition("multisig", "wallet", []byte{0, 0, 0, 0, 0, 0, 0, 1})
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "multisig", ext)
	assert.Equal(t, "wallet", typ)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, data)

	addr := cond.Address()
	require.NoError(t, addr.Validate())
}

func TestConditionValidate(t *testing.T) {
	if err := sigvault.Condition("random garbage").Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	// 20 bytes, the only valid address length.
	hexAddr := `0102030405060708090A0B0C0D0E0F1011121314`

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr sigvault.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: mustHexAddr(t, hexAddr),
		},
		"hex decoding": {
			json:     `"hex:` + hexAddr + `"`,
			wantAddr: mustHexAddr(t, hexAddr),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: sigvault.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid length": {
			json:    `"hex:abcd"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a sigvault.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("want %s address, got %s", tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := sigvault.NewAddress([]byte("round trip"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var back sigvault.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, addr.Equals(back))
}

func mustHexAddr(t *testing.T, enc string) sigvault.Address {
	t.Helper()
	addr, err := sigvault.ParseAddress(enc)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", enc, err)
	}
	return addr
}
