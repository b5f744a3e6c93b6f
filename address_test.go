package custody

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFormats(t *testing.T) {
	addr := NewProgramID("address-test")

	b32, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		input   string
		want    Address
		wantErr *errors.Error
	}{
		"base58": {
			input: addr.String(),
			want:  addr,
		},
		"hex": {
			input: "hex:" + hexOf(addr),
			want:  addr,
		},
		"bech32": {
			input: "bech32:" + b32,
			want:  addr,
		},
		"hex too short": {
			input:   "hex:0102",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			input:   "hex:zz",
			wantErr: errors.ErrInput,
		},
		"not base58": {
			input:   "0OIl",
			wantErr: errors.ErrInput,
		},
		"broken bech32": {
			input:   "bech32:cust1qqqq",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.input)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Who Address `json:"who"`
	}
	addr := NewProgramID("json")

	raw, err := json.Marshal(holder{Who: addr})
	require.NoError(t, err)
	assert.Equal(t, `{"who":"`+addr.String()+`"}`, string(raw))

	var h holder
	require.NoError(t, json.Unmarshal(raw, &h))
	assert.Equal(t, addr, h.Who)

	require.NoError(t, json.Unmarshal([]byte(`{"who":"hex:`+hexOf(addr)+`"}`), &h))
	assert.Equal(t, addr, h.Who)

	require.NoError(t, json.Unmarshal([]byte(`{"who":""}`), &h))
	assert.True(t, h.Who.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"who":"hex:01"}`), &h))
}

func TestAddressValidate(t *testing.T) {
	var zero Address
	assert.True(t, errors.ErrEmpty.Is(zero.Validate()))
	assert.NoError(t, NewProgramID("x").Validate())

	a := NewProgramID("x")
	b := NewProgramID("y")
	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))

	raw := a.Bytes()
	raw[0]++
	assert.NotEqual(t, a[0], raw[0], "bytes must be a copy")

	_, err := AddressFromBytes([]byte{1, 2, 3})
	assert.True(t, errors.ErrInput.Is(err))
}
