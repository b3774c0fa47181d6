package polkadot

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/OneOfOne/xxhash"
	"golang.org/x/crypto/blake2b"
)

// Hasher names as they appear in runtime metadata and tool descriptors.
const (
	HasherBlake2_128Concat = "Blake2_128Concat"
	HasherTwox64Concat     = "Twox64Concat"
	HasherIdentity         = "Identity"
)

// StorageKey creates the storage key for a plain pallet/item pair.
func StorageKey(pallet, item string) string {
	key := append(Twox128([]byte(pallet)), Twox128([]byte(item))...)
	return "0x" + hex.EncodeToString(key)
}

// StorageKeyWithArgs creates the storage key for a map item: the twox128
// pallet/item prefix followed by each key argument hashed per the
// declared hasher.
func StorageKeyWithArgs(pallet, item string, hashers []string, args [][]byte) (string, error) {
	if len(args) > len(hashers) {
		return "", fmt.Errorf("storage %s.%s: %d args but only %d hashers", pallet, item, len(args), len(hashers))
	}

	key := append(Twox128([]byte(pallet)), Twox128([]byte(item))...)
	for i, arg := range args {
		hashed, err := HashKey(hashers[i], arg)
		if err != nil {
			return "", fmt.Errorf("storage %s.%s key %d: %w", pallet, item, i+1, err)
		}
		key = append(key, hashed...)
	}
	return "0x" + hex.EncodeToString(key), nil
}

// HashKey applies one named hasher to a key argument.
func HashKey(hasher string, data []byte) ([]byte, error) {
	switch hasher {
	case HasherBlake2_128Concat:
		return append(Blake2_128(data), data...), nil
	case HasherTwox64Concat:
		return append(Twox64(data), data...), nil
	case HasherIdentity:
		return data, nil
	}
	return nil, fmt.Errorf("unsupported hasher %q", hasher)
}

// Twox128 implements the TwoX 128-bit hash
func Twox128(data []byte) []byte {
	hash1 := xxhash.NewS64(0)
	hash1.Write(data)
	hash2 := xxhash.NewS64(1)
	hash2.Write(data)

	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[0:], hash1.Sum64())
	binary.LittleEndian.PutUint64(out[8:], hash2.Sum64())
	return out
}

// Twox64 implements the TwoX 64-bit hash
func Twox64(data []byte) []byte {
	hash := xxhash.NewS64(0)
	hash.Write(data)
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, hash.Sum64())
	return out
}

// Blake2_128 implements Blake2b 128-bit hash
func Blake2_128(data []byte) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// blake2b.New(16, nil) cannot fail; keep the fallback non-panicking
		return make([]byte, 16)
	}
	h.Write(data)
	return h.Sum(nil)
}

// EncodeUint32 encodes a u32 as SCALE little-endian bytes.
func EncodeUint32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

// EncodeUint64 encodes a u64 as SCALE little-endian bytes.
func EncodeUint64(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}
