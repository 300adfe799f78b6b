package inproc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"

	"github.com/opd-ai/waku/message"
)

// Version-1 payload envelope, built before encryption:
//
//	flags(1) || payload-length(4, big endian) || payload || padding [|| signature(65)]
//
// The padding brings the unsigned part to a multiple of padTarget so the
// ciphertext leaks little about the payload size. Flag 0x01 marks a
// trailing compact signature over the unsigned part.
const (
	flagSigned    = 0x01
	padTarget     = 256
	signatureSize = 65
	gcmNonceSize  = 12
)

var hkdfInfo = []byte("waku-payload-v1")

// buildEnvelope assembles the cleartext envelope, signing it when a key
// is provided.
func buildEnvelope(payload []byte, signingKey *secp256k1.PrivateKey) ([]byte, error) {
	unsignedLen := 1 + 4 + len(payload)
	padLen := (padTarget - unsignedLen%padTarget) % padTarget

	envelope := make([]byte, unsignedLen+padLen)
	binary.BigEndian.PutUint32(envelope[1:5], uint32(len(payload)))
	copy(envelope[5:], payload)
	if _, err := rand.Read(envelope[unsignedLen:]); err != nil {
		return nil, err
	}

	if signingKey != nil {
		envelope[0] |= flagSigned
		digest := sha256.Sum256(envelope)
		sig := secpecdsa.SignCompact(signingKey, digest[:], false)
		envelope = append(envelope, sig...)
	}
	return envelope, nil
}

// openEnvelope splits a decrypted envelope back into its parts.
func openEnvelope(envelope []byte) (message.DecodedPayload, error) {
	if len(envelope) < 5 {
		return message.DecodedPayload{}, errors.New("envelope too short")
	}
	flags := envelope[0]

	body := envelope
	var sig []byte
	if flags&flagSigned != 0 {
		if len(envelope) < 5+signatureSize {
			return message.DecodedPayload{}, errors.New("envelope too short for signature")
		}
		body = envelope[:len(envelope)-signatureSize]
		sig = envelope[len(envelope)-signatureSize:]
	}

	payloadLen := binary.BigEndian.Uint32(body[1:5])
	if int(payloadLen) > len(body)-5 {
		return message.DecodedPayload{}, errors.New("envelope payload length out of range")
	}
	payload := body[5 : 5+payloadLen]
	padding := body[5+payloadLen:]

	decoded := message.DecodedPayload{
		Data:    base64.StdEncoding.EncodeToString(payload),
		Padding: base64.StdEncoding.EncodeToString(padding),
	}

	if sig != nil {
		digest := sha256.Sum256(body)
		pub, _, err := secpecdsa.RecoverCompact(sig, digest[:])
		if err != nil {
			return message.DecodedPayload{}, fmt.Errorf("signature recovery: %w", err)
		}
		sigHex := "0x" + hex.EncodeToString(sig)
		pubHex := "0x" + hex.EncodeToString(pub.SerializeUncompressed())
		decoded.Signature = &sigHex
		decoded.PublicKey = &pubHex
	}
	return decoded, nil
}

// gcmSeal encrypts with AES-256-GCM, prepending the random nonce.
func gcmSeal(key [32]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	out := make([]byte, gcmNonceSize, gcmNonceSize+len(plaintext)+gcm.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return gcm.Seal(out, out[:gcmNonceSize], plaintext, nil), nil
}

// gcmOpen reverses gcmSeal.
func gcmOpen(key [32]byte, sealed []byte) ([]byte, error) {
	if len(sealed) < gcmNonceSize {
		return nil, errors.New("ciphertext too short")
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, sealed[:gcmNonceSize], sealed[gcmNonceSize:], nil)
}

// deriveSharedKey derives the AES key for an ECIES exchange.
func deriveSharedKey(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) ([32]byte, error) {
	var key [32]byte
	secret := secp256k1.GenerateSharedSecret(priv, pub)
	reader := hkdf.New(sha256.New, secret, nil, hkdfInfo)
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return key, err
	}
	return key, nil
}

func parseSigningKey(signingKeyHex string) (*secp256k1.PrivateKey, error) {
	if signingKeyHex == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(signingKeyHex)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("signing key must be 32 bytes, got %d", len(raw))
	}
	return secp256k1.PrivKeyFromBytes(raw), nil
}

// sealMessage swaps a cleartext message's payload for the sealed
// envelope and bumps it to version 1.
func sealMessage(messageJSON string, seal func([]byte) ([]byte, error)) (string, string) {
	var msg message.Message
	if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
		return "", errorPayload("invalid message: %v", err)
	}
	if msg.Version != 0 {
		return "", errorPayload("message is already encoded (version %d)", msg.Version)
	}

	sealed, err := seal(msg.Payload)
	if err != nil {
		return "", errorPayload("payload encryption failed: %v", err)
	}
	msg.Payload = sealed
	msg.Version = 1

	out, err := json.Marshal(msg)
	if err != nil {
		return "", errorPayload("payload encryption failed: %v", err)
	}
	return string(out), ""
}

// sealSymmetric encrypts a message payload with a 32-byte AES key.
func sealSymmetric(messageJSON, symKeyHex, signingKeyHex string) (string, string) {
	key, err := message.SymmetricKeyFromHex(symKeyHex)
	if err != nil {
		return "", errorPayload("invalid symmetric key: %v", err)
	}
	signingKey, err := parseSigningKey(signingKeyHex)
	if err != nil {
		return "", errorPayload("invalid signing key: %v", err)
	}

	return sealMessage(messageJSON, func(payload []byte) ([]byte, error) {
		envelope, err := buildEnvelope(payload, signingKey)
		if err != nil {
			return nil, err
		}
		return gcmSeal([32]byte(key), envelope)
	})
}

// sealAsymmetric encrypts a message payload for a secp256k1 public key
// using an ephemeral ECIES exchange. The ephemeral public key travels
// compressed ahead of the ciphertext.
func sealAsymmetric(messageJSON, publicKeyHex, signingKeyHex string) (string, string) {
	rawPub, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", errorPayload("invalid public key: %v", err)
	}
	pub, err := secp256k1.ParsePubKey(rawPub)
	if err != nil {
		return "", errorPayload("invalid public key: %v", err)
	}
	signingKey, err := parseSigningKey(signingKeyHex)
	if err != nil {
		return "", errorPayload("invalid signing key: %v", err)
	}

	return sealMessage(messageJSON, func(payload []byte) ([]byte, error) {
		envelope, err := buildEnvelope(payload, signingKey)
		if err != nil {
			return nil, err
		}
		ephemeral, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		key, err := deriveSharedKey(ephemeral, pub)
		if err != nil {
			return nil, err
		}
		sealed, err := gcmSeal(key, envelope)
		if err != nil {
			return nil, err
		}
		return append(ephemeral.PubKey().SerializeCompressed(), sealed...), nil
	})
}

// decodeSealed parses a version-1 message and opens its envelope with
// the supplied decrypt function.
func decodeSealed(messageJSON string, open func([]byte) ([]byte, error)) string {
	var msg message.Message
	if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
		return errorPayload("invalid message: %v", err)
	}
	if msg.Version != 1 {
		return errorPayload("message version %d is not decodable", msg.Version)
	}

	envelope, err := open(msg.Payload)
	if err != nil {
		return errorPayload("payload decryption failed: %v", err)
	}
	decoded, err := openEnvelope(envelope)
	if err != nil {
		return errorPayload("payload decryption failed: %v", err)
	}
	return resultPayload(decoded)
}

// DecodeSymmetric decrypts a received version-1 message with a symmetric
// key.
func (e *Engine) DecodeSymmetric(messageJSON, symKeyHex string) string {
	key, err := message.SymmetricKeyFromHex(symKeyHex)
	if err != nil {
		return errorPayload("invalid symmetric key: %v", err)
	}
	return decodeSealed(messageJSON, func(sealed []byte) ([]byte, error) {
		return gcmOpen([32]byte(key), sealed)
	})
}

// DecodeAsymmetric decrypts a received version-1 message with a
// secp256k1 private key.
func (e *Engine) DecodeAsymmetric(messageJSON, privateKeyHex string) string {
	priv, err := parseSigningKey(privateKeyHex)
	if err != nil || priv == nil {
		return errorPayload("invalid private key")
	}
	return decodeSealed(messageJSON, func(sealed []byte) ([]byte, error) {
		if len(sealed) < 33 {
			return nil, errors.New("ciphertext too short for ephemeral key")
		}
		ephemeralPub, err := secp256k1.ParsePubKey(sealed[:33])
		if err != nil {
			return nil, err
		}
		key, err := deriveSharedKey(priv, ephemeralPub)
		if err != nil {
			return nil, err
		}
		return gcmOpen(key, sealed[33:])
	})
}
