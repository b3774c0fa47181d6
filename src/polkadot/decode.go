package polkadot

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Value type names used in tool descriptors to pick a decoder.
const (
	ValueU32         = "u32"
	ValueU64         = "u64"
	ValueU128        = "u128"
	ValueAccountInfo = "accountinfo"
	ValueHex         = "hex"
)

// DecodeHex decodes a hex string, handling 0x prefix
func DecodeHex(hexStr string) ([]byte, error) {
	hexStr = strings.TrimPrefix(hexStr, "0x")
	return hex.DecodeString(hexStr)
}

// DecodeU32 decodes a little-endian u32 from hex
func DecodeU32(hexStr string) (uint32, error) {
	data, err := DecodeHex(hexStr)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("insufficient data for u32")
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}

// DecodeU64 decodes a little-endian u64 from hex
func DecodeU64(hexStr string) (uint64, error) {
	data, err := DecodeHex(hexStr)
	if err != nil {
		return 0, err
	}
	if len(data) < 8 {
		return 0, fmt.Errorf("insufficient data for u64")
	}
	return binary.LittleEndian.Uint64(data[:8]), nil
}

// DecodeU128 decodes a little-endian u128 from hex
func DecodeU128(hexStr string) (*big.Int, error) {
	data, err := DecodeHex(hexStr)
	if err != nil {
		return nil, err
	}
	if len(data) < 16 {
		return nil, fmt.Errorf("insufficient data for u128")
	}
	reversed := make([]byte, 16)
	for i := 0; i < 16; i++ {
		reversed[i] = data[15-i]
	}
	return new(big.Int).SetBytes(reversed), nil
}

func u128At(data []byte, off int) (*big.Int, error) {
	if len(data) < off+16 {
		return nil, fmt.Errorf("insufficient data for u128 at offset %d", off)
	}
	reversed := make([]byte, 16)
	for i := 0; i < 16; i++ {
		reversed[i] = data[off+15-i]
	}
	return new(big.Int).SetBytes(reversed), nil
}

// DecodeAccountInfo decodes a System.Account value: nonce, consumers,
// providers, sufficients (u32 each) followed by the balance data
// (free, reserved, frozen as u128). Balances come back as decimal digit
// strings in the smallest on-chain unit.
func DecodeAccountInfo(hexStr string) (map[string]any, error) {
	data, err := DecodeHex(hexStr)
	if err != nil {
		return nil, err
	}
	if len(data) < 16+48 {
		return nil, fmt.Errorf("insufficient data for account info")
	}

	nonce := binary.LittleEndian.Uint32(data[0:4])

	free, err := u128At(data, 16)
	if err != nil {
		return nil, err
	}
	reserved, err := u128At(data, 32)
	if err != nil {
		return nil, err
	}
	frozen, err := u128At(data, 48)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"nonce":    nonce,
		"free":     free.String(),
		"reserved": reserved.String(),
		"frozen":   frozen.String(),
	}, nil
}

// DecodeValue decodes a raw hex storage value according to the declared
// value type, falling back to the hex string itself.
func DecodeValue(valueType, hexStr string) (any, error) {
	if hexStr == "" || hexStr == "0x" {
		return nil, nil
	}
	switch valueType {
	case ValueU32:
		return DecodeU32(hexStr)
	case ValueU64:
		return DecodeU64(hexStr)
	case ValueU128:
		v, err := DecodeU128(hexStr)
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case ValueAccountInfo:
		return DecodeAccountInfo(hexStr)
	}
	return hexStr, nil
}
