package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/require"
)

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "vaultd-genesis")
	require.NoError(t, err)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	good := write("good.json", `{"app_state": {"ok": true}}`)
	bad := write("bad.json", `{"app_state": {"ok": false}}`)
	broken := write("broken.json", `{"app_state": `)

	ini := custody.GenesisInitializer(func(opts custody.Options, db custody.KVStore) error {
		var ok bool
		if err := opts.ReadOptions("ok", &ok); err != nil {
			return err
		}
		if !ok {
			return errors.Wrap(errors.ErrState, "not ok")
		}
		db.Set([]byte("ok"), []byte{1})
		return nil
	})

	assert.Nil(t, ValidateGenesis(ini, []string{good}))
	assert.IsErr(t, errors.ErrState, ValidateGenesis(ini, []string{good, bad}))
	assert.IsErr(t, errors.ErrInput, ValidateGenesis(ini, []string{broken}))
	assert.IsErr(t, errors.ErrNotFound, ValidateGenesis(ini, []string{filepath.Join(dir, "missing.json")}))
}
