package message

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SymmetricKey is a 32-byte AES-256-GCM key used by the engine's
// symmetric payload encryption.
type SymmetricKey [32]byte

// GenerateSymmetricKey returns a fresh random symmetric key.
func GenerateSymmetricKey() (SymmetricKey, error) {
	var key SymmetricKey
	if _, err := rand.Read(key[:]); err != nil {
		return SymmetricKey{}, err
	}
	return key, nil
}

// SymmetricKeyFromHex parses a hex-encoded 32-byte key. A 0x prefix is
// accepted.
func SymmetricKeyFromHex(s string) (SymmetricKey, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return SymmetricKey{}, err
	}
	if len(raw) != len(SymmetricKey{}) {
		return SymmetricKey{}, errors.New("symmetric key must be 32 bytes")
	}
	var key SymmetricKey
	copy(key[:], raw)
	return key, nil
}

// Hex returns the lowercase hex encoding of the key, without prefix.
func (k SymmetricKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// GenerateKeyPair returns a fresh secp256k1 key pair for asymmetric
// payload encryption and message signing.
func GenerateKeyPair() (*secp256k1.PrivateKey, *secp256k1.PublicKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, err
	}
	return priv, priv.PubKey(), nil
}
