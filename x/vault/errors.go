package vault

import "github.com/iov-one/custody/errors"

// x/vault reserves 6000 ~ 6099.
var (
	ErrInvalidVaultAddress = errors.Register(6000, "invalid vault address")
)
