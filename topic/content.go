package topic

import (
	"fmt"
	"strconv"
	"strings"
)

// contentTopicGrammar is the shape reported in malformed-topic errors.
const contentTopicGrammar = "/{application-name}/{version}/{content-topic-name}/{encoding}"

// ContentTopic is the application-level classification of a Waku message.
type ContentTopic struct {
	ApplicationName  string
	Version          uint32
	ContentTopicName string
	Encoding         Encoding
}

// NewContentTopic builds a content topic from its parts.
func NewContentTopic(applicationName string, version uint32, contentTopicName string, encoding Encoding) ContentTopic {
	return ContentTopic{
		ApplicationName:  applicationName,
		Version:          version,
		ContentTopicName: contentTopicName,
		Encoding:         encoding,
	}
}

// ParseContentTopic parses the canonical four-segment content topic form.
// Every segment must be non-empty, the version segment must be a
// non-negative integer and the encoding token must be one of the closed
// set. Anything else fails with a MalformedTopicError.
func ParseContentTopic(s string) (ContentTopic, error) {
	malformed := &MalformedTopicError{Grammar: contentTopicGrammar, Input: s}

	if !strings.HasPrefix(s, "/") {
		return ContentTopic{}, malformed
	}
	parts := strings.Split(s[1:], "/")
	if len(parts) != 4 {
		return ContentTopic{}, malformed
	}
	for _, part := range parts {
		if part == "" {
			return ContentTopic{}, malformed
		}
	}

	version, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ContentTopic{}, malformed
	}
	encoding, err := ParseEncoding(parts[3])
	if err != nil {
		return ContentTopic{}, malformed
	}

	return ContentTopic{
		ApplicationName:  parts[0],
		Version:          uint32(version),
		ContentTopicName: parts[2],
		Encoding:         encoding,
	}, nil
}

// String formats the canonical content topic form. It is total: any
// ContentTopic value formats without error.
func (ct ContentTopic) String() string {
	return fmt.Sprintf("/%s/%d/%s/%s", ct.ApplicationName, ct.Version, ct.ContentTopicName, ct.Encoding)
}

// MarshalText implements encoding.TextMarshaler so content topics appear
// as their canonical string on the JSON wire.
func (ct ContentTopic) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ct *ContentTopic) UnmarshalText(text []byte) error {
	parsed, err := ParseContentTopic(string(text))
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}
