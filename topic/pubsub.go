package topic

import (
	"fmt"
	"strings"
)

// pubSubTopicGrammar is the shape reported in malformed-topic errors.
const pubSubTopicGrammar = "/waku/2/{topic-name}/{encoding}"

// PubSubTopic is the network-level topic over which messages are relayed.
type PubSubTopic struct {
	TopicName string
	Encoding  Encoding
}

// NewPubSubTopic builds a pub/sub topic from its parts.
func NewPubSubTopic(topicName string, encoding Encoding) PubSubTopic {
	return PubSubTopic{TopicName: topicName, Encoding: encoding}
}

// DefaultPubSubTopic returns the well-known topic relay and store
// operations fall back to when the caller supplies none.
func DefaultPubSubTopic() PubSubTopic {
	return PubSubTopic{TopicName: "default-waku", Encoding: EncodingProto}
}

// ParsePubSubTopic parses the canonical pub/sub topic form. The leading
// /waku/2/ prefix is fixed; the topic-name and encoding segments must be
// non-empty and the encoding token must be one of the closed set.
func ParsePubSubTopic(s string) (PubSubTopic, error) {
	malformed := &MalformedTopicError{Grammar: pubSubTopicGrammar, Input: s}

	if !strings.HasPrefix(s, "/") {
		return PubSubTopic{}, malformed
	}
	parts := strings.Split(s[1:], "/")
	if len(parts) != 4 || parts[0] != "waku" || parts[1] != "2" {
		return PubSubTopic{}, malformed
	}
	if parts[2] == "" || parts[3] == "" {
		return PubSubTopic{}, malformed
	}

	encoding, err := ParseEncoding(parts[3])
	if err != nil {
		return PubSubTopic{}, malformed
	}

	return PubSubTopic{TopicName: parts[2], Encoding: encoding}, nil
}

// String formats the canonical pub/sub topic form.
func (pt PubSubTopic) String() string {
	return fmt.Sprintf("/waku/2/%s/%s", pt.TopicName, pt.Encoding)
}

// MarshalText implements encoding.TextMarshaler.
func (pt PubSubTopic) MarshalText() ([]byte, error) {
	return []byte(pt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pt *PubSubTopic) UnmarshalText(text []byte) error {
	parsed, err := ParsePubSubTopic(string(text))
	if err != nil {
		return err
	}
	*pt = parsed
	return nil
}
