package custody

import (
	"github.com/iov-one/custody/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes every persisted model and transaction. No interfaces are
// registered: one of many values is expressed with optional fields.
var cdc = amino.NewCodec()

// MarshalBinary serializes obj with the binary codec shared by the whole
// application.
func MarshalBinary(obj interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(obj)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot marshal %T: %s", obj, err)
	}
	return bz, nil
}

// UnmarshalBinary is the inverse of MarshalBinary. ptr must be a pointer.
func UnmarshalBinary(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", ptr, err)
	}
	return nil
}
