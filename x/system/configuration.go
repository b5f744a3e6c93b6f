package system

import (
	"math/bits"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confKey = "system"

// Configuration holds the rent parameters of the ledger.
type Configuration struct {
	// LamportsPerByteYear is the rent charged for a single byte per year.
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year"`
	// StorageOverhead is the number of bytes every account is charged for
	// on top of its data.
	StorageOverhead uint64 `json:"storage_overhead"`
	// ExemptionThreshold is the number of years of rent an account must
	// hold to never be charged.
	ExemptionThreshold custody.Fraction `json:"exemption_threshold"`
}

// DefaultConfiguration returns the rent parameters used when genesis does
// not provide any.
func DefaultConfiguration() Configuration {
	return Configuration{
		LamportsPerByteYear: 3480,
		StorageOverhead:     128,
		ExemptionThreshold:  custody.Fraction{Numerator: 2, Denominator: 1},
	}
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return custody.MarshalBinary(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return custody.UnmarshalBinary(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.ExemptionThreshold.Validate(); err != nil {
		return errors.Wrap(err, "exemption threshold")
	}
	return nil
}

// LoadConfiguration returns the rent configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confKey, &conf); err != nil {
		return conf, errors.Wrap(err, "load system configuration")
	}
	return conf, nil
}

// MinimumBalance returns the lamports an account of the given data size must
// hold to be rent exempt:
//
//   (space + overhead) * lamportsPerByteYear * exemptionThreshold
func MinimumBalance(conf Configuration, space uint64) (uint64, error) {
	size, carry := bits.Add64(space, conf.StorageOverhead, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "account size %d", space)
	}
	hi, yearly := bits.Mul64(size, conf.LamportsPerByteYear)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "yearly rent of %d bytes", size)
	}
	min, err := conf.ExemptionThreshold.MulUint64(yearly)
	if err != nil {
		return 0, errors.Wrap(err, "exemption threshold")
	}
	return min, nil
}
