package polkadot

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKeyKnownVectors(t *testing.T) {
	// Prefixes verified against live Polkadot storage keys.
	assert.Equal(t,
		"0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9",
		StorageKey("System", "Account"))
	assert.Equal(t,
		"0xf0c365c3cf59d671eb72da0e7a4113c49f1f0515f462cdcf84e0f1d6045dfcbb",
		StorageKey("Timestamp", "Now"))
}

func TestStorageKeyWithArgsBlake2Concat(t *testing.T) {
	pub, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(t, err)

	key, err := StorageKeyWithArgs("System", "Account", []string{HasherBlake2_128Concat}, [][]byte{pub})
	require.NoError(t, err)

	prefix := StorageKey("System", "Account")
	assert.Equal(t, prefix, key[:len(prefix)])
	// blake2_128 digest (16 bytes) plus the 32-byte key itself
	assert.Len(t, key, len(prefix)+2*(16+32))
	assert.Contains(t, key, hex.EncodeToString(pub))
}

func TestStorageKeyWithArgsTwox64Concat(t *testing.T) {
	arg := EncodeUint32(1984)
	key, err := StorageKeyWithArgs("Assets", "Asset", []string{HasherTwox64Concat}, [][]byte{arg})
	require.NoError(t, err)

	prefix := StorageKey("Assets", "Asset")
	assert.Equal(t, prefix, key[:len(prefix)])
	assert.Len(t, key, len(prefix)+2*(8+4))
	assert.Contains(t, key, hex.EncodeToString(arg))
}

func TestStorageKeyWithArgsRejectsExtraArgs(t *testing.T) {
	_, err := StorageKeyWithArgs("System", "Account", nil, [][]byte{{1}})
	assert.Error(t, err)
}

func TestHashKeyUnsupportedHasher(t *testing.T) {
	_, err := HashKey("Twox256", []byte{1})
	assert.Error(t, err)
}

func TestHashKeyIdentity(t *testing.T) {
	out, err := HashKey(HasherIdentity, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)
}

func TestEncodeUintLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{0xc0, 0x07, 0x00, 0x00}, EncodeUint32(1984))
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, EncodeUint64(1))
}
