package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type myconfig struct {
	Owner custody.Address `json:"owner"`
	Num   int64           `json:"num"`
}

func (c *myconfig) Marshal() ([]byte, error)    { return custody.MarshalBinary(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return custody.UnmarshalBinary(raw, c) }

func (c *myconfig) Validate() error {
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return c.Owner.Validate()
}

func TestSaveLoad(t *testing.T) {
	owner := custody.NewProgramID("owner")

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid": {
			Conf: &myconfig{Owner: owner, Num: 852151421},
		},
		"invalid cannot be saved": {
			Conf:        &myconfig{Owner: owner, Num: -1},
			WantSaveErr: errors.ErrInput,
			WantLoadErr: errors.ErrNotFound,
		},
		"missing owner cannot be saved": {
			Conf:        &myconfig{Num: 1},
			WantSaveErr: errors.ErrEmpty,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "mypkg", tc.Conf)
			if tc.WantSaveErr != nil {
				assert.IsErr(t, tc.WantSaveErr, err)
			} else {
				assert.Nil(t, err)
			}

			var got myconfig
			err = Load(db, "mypkg", &got)
			if tc.WantLoadErr != nil {
				assert.IsErr(t, tc.WantLoadErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := custody.NewProgramID("owner")
	genesis := `{"conf": {"mypkg": {"owner": "` + owner.String() + `", "num": 7}}}`

	var opts custody.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "mypkg", &myconfig{}))

	var got myconfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, myconfig{Owner: owner, Num: 7}, got)

	err := InitConfig(db, opts, "otherpkg", &myconfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}
