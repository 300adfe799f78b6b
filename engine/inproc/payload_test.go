package inproc

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	wakuengine "github.com/opd-ai/waku/engine"
	"github.com/opd-ai/waku/message"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := []byte("some payload")

	envelope, err := buildEnvelope(payload, nil)
	if err != nil {
		t.Fatalf("buildEnvelope failed: %v", err)
	}
	if len(envelope)%padTarget != 0 {
		t.Errorf("unsigned envelope length %d is not a multiple of %d", len(envelope), padTarget)
	}

	decoded, err := openEnvelope(envelope)
	if err != nil {
		t.Fatalf("openEnvelope failed: %v", err)
	}
	data, err := base64.StdEncoding.DecodeString(decoded.Data)
	if err != nil {
		t.Fatalf("data is not base64: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("payload round trip gave %q", data)
	}
	if decoded.Signature != nil || decoded.PublicKey != nil {
		t.Error("unsigned envelope must not report a signature")
	}
	if decoded.Padding == "" {
		t.Error("padding missing")
	}
}

func TestEnvelopeSignatureRecovery(t *testing.T) {
	signingKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	envelope, err := buildEnvelope([]byte("signed payload"), signingKey)
	if err != nil {
		t.Fatalf("buildEnvelope failed: %v", err)
	}

	decoded, err := openEnvelope(envelope)
	if err != nil {
		t.Fatalf("openEnvelope failed: %v", err)
	}
	if decoded.Signature == nil || decoded.PublicKey == nil {
		t.Fatal("signed envelope must report signature and public key")
	}
	if !strings.HasPrefix(*decoded.PublicKey, "0x") || !strings.HasPrefix(*decoded.Signature, "0x") {
		t.Error("hex fields must carry a 0x prefix")
	}

	want := "0x" + hex.EncodeToString(signingKey.PubKey().SerializeUncompressed())
	if *decoded.PublicKey != want {
		t.Errorf("recovered public key %s, want %s", *decoded.PublicKey, want)
	}
}

func TestGCMSealOpen(t *testing.T) {
	var key [32]byte
	key[0] = 1

	sealed, err := gcmSeal(key, []byte("plaintext"))
	if err != nil {
		t.Fatalf("gcmSeal failed: %v", err)
	}
	opened, err := gcmOpen(key, sealed)
	if err != nil {
		t.Fatalf("gcmOpen failed: %v", err)
	}
	if string(opened) != "plaintext" {
		t.Errorf("round trip gave %q", opened)
	}

	// Tampering must be caught by the GCM tag.
	sealed[len(sealed)-1] ^= 0xff
	if _, err := gcmOpen(key, sealed); err == nil {
		t.Error("tampered ciphertext should not open")
	}

	var wrong [32]byte
	wrong[0] = 2
	if _, err := gcmOpen(wrong, sealed); err == nil {
		t.Error("wrong key should not open")
	}
}

func TestDecodeSymmetricVersionCheck(t *testing.T) {
	e := startedEngine(t)
	key, err := message.GenerateSymmetricKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	cleartext := `{"payload":"AQ==","contentTopic":"/app/1/x/proto","version":0,"timestamp":1}`
	if _, err := wakuengine.Decode[message.DecodedPayload](e.DecodeSymmetric(cleartext, key.Hex())); err == nil {
		t.Error("version-0 message should not decode")
	}
}

func TestSealSymmetricProducesVersionOne(t *testing.T) {
	key, err := message.GenerateSymmetricKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	sealedJSON, errPayload := sealSymmetric(`{"payload":"AQID","contentTopic":"/app/1/x/proto","version":0,"timestamp":7}`, key.Hex(), "")
	if errPayload != "" {
		t.Fatalf("sealSymmetric failed: %s", errPayload)
	}

	var sealed message.Message
	if err := json.Unmarshal([]byte(sealedJSON), &sealed); err != nil {
		t.Fatalf("sealed message is not valid JSON: %v", err)
	}
	if sealed.Version != 1 {
		t.Errorf("sealed version %d, want 1", sealed.Version)
	}
	if sealed.Timestamp != 7 {
		t.Errorf("timestamp must survive sealing, got %d", sealed.Timestamp)
	}

	// Sealing an already sealed message is refused.
	if _, errPayload := sealSymmetric(sealedJSON, key.Hex(), ""); errPayload == "" {
		t.Error("double sealing should fail")
	}
}
