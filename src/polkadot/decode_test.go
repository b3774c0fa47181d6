package polkadot

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeU32(t *testing.T) {
	v, err := DecodeU32("0x0a000000")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	_, err = DecodeU32("0x0a00")
	assert.Error(t, err)
}

func TestDecodeU64(t *testing.T) {
	v, err := DecodeU64("0x0100000000000000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestDecodeU128(t *testing.T) {
	// 1 DOT in Planck, little endian, padded to 16 bytes
	v, err := DecodeU128("0x00e40b54020000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "10000000000", v.String())
}

func TestDecodeAccountInfo(t *testing.T) {
	buf := make([]byte, 64)
	copy(buf[0:], EncodeUint32(5))            // nonce
	copy(buf[16:], EncodeUint64(10000000000)) // free, low word
	copy(buf[32:], EncodeUint64(25))          // reserved, low word

	info, err := DecodeAccountInfo("0x" + hex.EncodeToString(buf))
	require.NoError(t, err)
	assert.Equal(t, uint32(5), info["nonce"])
	assert.Equal(t, "10000000000", info["free"])
	assert.Equal(t, "25", info["reserved"])
	assert.Equal(t, "0", info["frozen"])
}

func TestDecodeAccountInfoShortData(t *testing.T) {
	_, err := DecodeAccountInfo("0x0102")
	assert.Error(t, err)
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(ValueU32, "0x0a000000")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	v, err = DecodeValue(ValueU128, "0x00e40b54020000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "10000000000", v)

	v, err = DecodeValue(ValueHex, "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", v)
}

func TestDecodeValueEmptyStorage(t *testing.T) {
	for _, raw := range []string{"", "0x"} {
		v, err := DecodeValue(ValueU128, raw)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestDecodeSS58(t *testing.T) {
	// Well-known development key (Alice).
	pub, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(t, err)
	assert.Equal(t,
		"d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d",
		hex.EncodeToString(pub))
}

func TestDecodeSS58HexPassthrough(t *testing.T) {
	pub, err := DecodeSS58("0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d")
	require.NoError(t, err)
	assert.Len(t, pub, 32)
}

func TestDecodeSS58Invalid(t *testing.T) {
	for _, addr := range []string{"", "not-an-address", "0Ol"} {
		_, err := DecodeSS58(addr)
		assert.Error(t, err, addr)
	}
}
