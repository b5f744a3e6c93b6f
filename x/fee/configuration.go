package fee

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confKey = "fee"

// Configuration of the network fee.
type Configuration struct {
	LamportsPerSignature uint64          `json:"lamports_per_signature"`
	Collector            custody.Address `json:"collector"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return custody.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	if c.LamportsPerSignature == 0 {
		return nil
	}
	if err := c.Collector.Validate(); err != nil {
		return errors.Wrap(err, "collector address")
	}
	return nil
}

// LoadConfiguration returns the fee configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confKey, &conf); err != nil {
		return conf, errors.Wrap(err, "load fee configuration")
	}
	return conf, nil
}

// Initializer stores the fee configuration from genesis. Without one, no
// fee is charged.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(kv, opts, confKey, &conf)
	if errors.ErrNotFound.Is(err) {
		return gconf.Save(kv, confKey, &conf)
	}
	return err
}
