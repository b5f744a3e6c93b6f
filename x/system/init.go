package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "system"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address  custody.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database. The rent configuration is read from
// conf.system and falls back to DefaultConfiguration.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(kv, opts, confKey, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		if err := gconf.Save(kv, confKey, &conf); err != nil {
			return errors.Wrap(err, "default configuration")
		}
	default:
		return err
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis account")
		}
		if bucket.Has(kv, acct.Address[:]) == nil {
			return errors.Wrapf(errors.ErrDuplicate, "genesis account %s", acct.Address)
		}
		if err := bucket.Put(kv, acct.Address[:], &Account{Lamports: acct.Lamports}); err != nil {
			return err
		}
	}
	return nil
}
