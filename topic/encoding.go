package topic

import (
	"fmt"
	"strings"
)

// Encoding identifies the serialization of a message payload as carried
// in the final segment of a topic string.
type Encoding uint8

const (
	// EncodingProto marks a protobuf-encoded payload.
	EncodingProto Encoding = iota
	// EncodingRlp marks an RLP-encoded payload.
	EncodingRlp
	// EncodingRfc26 marks a payload encoded per Waku RFC 26.
	EncodingRfc26
)

// String returns the lowercase canonical token for the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingProto:
		return "proto"
	case EncodingRlp:
		return "rlp"
	case EncodingRfc26:
		return "rfc26"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// ParseEncoding parses an encoding token. Matching is case-insensitive;
// the canonical form emitted by String is always lowercase.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "proto":
		return EncodingProto, nil
	case "rlp":
		return EncodingRlp, nil
	case "rfc26":
		return EncodingRfc26, nil
	default:
		return 0, fmt.Errorf("unrecognized encoding: %s", s)
	}
}
