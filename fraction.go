package custody

import (
	"fmt"
	"math/bits"

	"github.com/iov-one/custody/errors"
)

// Fraction represents a rational number.
type Fraction struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// Validate returns an error if the fraction cannot be used.
func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return errors.Wrap(errors.ErrInput, "zero denominator")
	}
	return nil
}

// IsZero returns true if the value represented by this fraction is zero.
func (f Fraction) IsZero() bool {
	return f.Numerator == 0
}

// String returns a numerator/denominator form.
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// MulUint64 returns value multiplied by the fraction, rounded down. The
// intermediate product is computed on 128 bits so only a result that does
// not fit into 64 bits is an overflow.
func (f Fraction) MulUint64(value uint64) (uint64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(value, uint64(f.Numerator))
	if hi >= uint64(f.Denominator) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %s", value, f)
	}
	quo, _ := bits.Div64(hi, lo, uint64(f.Denominator))
	return quo, nil
}
