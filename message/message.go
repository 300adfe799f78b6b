package message

import (
	"time"

	"github.com/opd-ai/waku/topic"
)

// Version is the Waku message version number. Version 0 payloads are
// cleartext, version 1 payloads carry the encrypted envelope described
// in Waku RFC 26.
type Version = uint32

// Message is a Waku message as it crosses the engine boundary. Payload
// travels base64-encoded inside the JSON envelope; ContentTopic travels
// as its canonical string form.
type Message struct {
	Payload      []byte             `json:"payload"`
	ContentTopic topic.ContentTopic `json:"contentTopic"`
	Version      Version            `json:"version"`
	// Timestamp is Unix time in nanoseconds.
	Timestamp int64 `json:"timestamp"`
}

// NewMessage builds a version-0 message for the given content topic,
// stamped with the current time.
func NewMessage(payload []byte, contentTopic topic.ContentTopic) Message {
	return Message{
		Payload:      payload,
		ContentTopic: contentTopic,
		Version:      0,
		Timestamp:    time.Now().UnixNano(),
	}
}

// DecodedPayload is the result of the engine decrypting a received
// version-1 message. This layer carries it through without touching the
// key material or signature.
type DecodedPayload struct {
	// PublicKey is the signer's key, hex encoded with 0x prefix, when
	// the message was signed.
	PublicKey *string `json:"pubkey,omitempty"`
	// Signature over the payload, hex encoded with 0x prefix.
	Signature *string `json:"signature,omitempty"`
	// Data is the decrypted payload, base64 encoded.
	Data string `json:"data"`
	// Padding is the decrypted padding, base64 encoded.
	Padding string `json:"padding"`
}
