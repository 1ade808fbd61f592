package hwpv5

import (
	"crypto/aes"
	"encoding/binary"
	"errors"
	"fmt"
)

const distributeDataSize = 256

// decryptDistribution strips the DISTRIBUTE_DOC_DATA record that opens every
// ViewText section and decrypts the remainder with AES-128 ECB. A trailing
// partial block is dropped.
func decryptDistribution(raw []byte) ([]byte, error) {
	if len(raw) < 4+distributeDataSize {
		return nil, errors.New("distribution stream too short")
	}
	header := binary.LittleEndian.Uint32(raw)
	tag := header & recTagMask
	size := header >> (recTagBits + recLevelBits)
	if tag != recTagDistributeDocData || size != distributeDataSize {
		return nil, fmt.Errorf("invalid distribution document stream (tag=0x%x, size=%d)", tag, size)
	}

	key, err := deriveKey(raw[4 : 4+distributeDataSize])
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	body := raw[4+distributeDataSize:]
	body = body[:len(body)-len(body)%aes.BlockSize]
	out := make([]byte, len(body))
	for i := 0; i < len(body); i += aes.BlockSize {
		block.Decrypt(out[i:], body[i:])
	}
	return out, nil
}

// deriveKey extracts the AES-128 key from the distribution data:
// 1. the first 4 bytes seed MSVC rand()
// 2. rand() pairs fill a 256-byte mask (value, run length)
// 3. the mask is XORed over the data
// 4. the key is the 16 bytes at (seed & 0x0F) + 4
func deriveKey(distData []byte) ([]byte, error) {
	if len(distData) != distributeDataSize {
		return nil, errors.New("invalid distribution data size")
	}

	seed := binary.LittleEndian.Uint32(distData[0:4])
	rng := &msvcRand{state: seed}

	mask := make([]byte, distributeDataSize)
	for i := 0; i < len(mask); {
		v := byte(rng.rand() & 0xFF)
		n := int(rng.rand()&0x0F) + 1
		for j := 0; j < n && i < len(mask); j++ {
			mask[i] = v
			i++
		}
	}

	offset := int(seed&0x0F) + 4
	key := make([]byte, 16)
	for i := range key {
		key[i] = distData[offset+i] ^ mask[offset+i]
	}
	return key, nil
}

// msvcRand implements MS Visual C++ rand():
// next = previous * 214013 + 2531011
type msvcRand struct {
	state uint32
}

func (r *msvcRand) rand() uint32 {
	r.state = r.state*214013 + 2531011
	return (r.state >> 16) & 0x7FFF
}
