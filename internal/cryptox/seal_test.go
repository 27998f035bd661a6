package cryptox

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	key1 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"))
	key2 := DeriveKey([]byte("secret-password"), []byte("fixed-salt"))

	require.True(t, bytes.Equal(key1, key2))
	assert.Equal(t, "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39", hex.EncodeToString(key1))

	other := DeriveKey([]byte("secret-password"), []byte("salt-2"))
	assert.False(t, bytes.Equal(key1, other))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	plain := []byte(`{"wanderlust_quotes":"[]"}`)

	doc, err := Seal(plain, []byte("namaste"))
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "wanderlust")

	var s Sealed
	require.NoError(t, json.Unmarshal(doc, &s))
	assert.Equal(t, 1, s.Version)
	assert.Len(t, s.Salt, 16)

	got, err := Open(doc, []byte("namaste"))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestSeal_FreshSaltEachTime(t *testing.T) {
	a, err := Seal([]byte("x"), []byte("p"))
	require.NoError(t, err)
	b, err := Seal([]byte("x"), []byte("p"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	doc, err := Seal([]byte("data"), []byte("right"))
	require.NoError(t, err)

	_, err = Open(doc, []byte("wrong"))
	require.ErrorIs(t, err, ErrOpenFailed)

	_, err = Open([]byte(`{"wanderlust_quotes":"[]"}`), []byte("right"))
	require.ErrorIs(t, err, ErrNotSealed)

	_, err = Open([]byte(`{"version":9}`), []byte("right"))
	require.ErrorIs(t, err, ErrNotSealed)

	_, err = Open(doc, nil)
	require.ErrorIs(t, err, ErrEmptyPassphrase)
	_, err = Seal([]byte("data"), []byte{})
	require.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	Wipe(b)
	assert.Equal(t, make([]byte, 6), b)
	Wipe(nil)
}
