package topic

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseContentTopic(t *testing.T) {
	ct, err := ParseContentTopic("/myapp/1/chat/proto")
	if err != nil {
		t.Fatalf("ParseContentTopic failed: %v", err)
	}
	if ct.ApplicationName != "myapp" {
		t.Errorf("expected application name %q, got %q", "myapp", ct.ApplicationName)
	}
	if ct.Version != 1 {
		t.Errorf("expected version 1, got %d", ct.Version)
	}
	if ct.ContentTopicName != "chat" {
		t.Errorf("expected content topic name %q, got %q", "chat", ct.ContentTopicName)
	}
	if ct.Encoding != EncodingProto {
		t.Errorf("expected proto encoding, got %v", ct.Encoding)
	}
	if got := ct.String(); got != "/myapp/1/chat/proto" {
		t.Errorf("formatting back gave %q", got)
	}
}

func TestContentTopicRoundTrip(t *testing.T) {
	inputs := []string{
		"/myapp/1/chat/proto",
		"/toy-chat/2/huilong/rlp",
		"/app/0/x/rfc26",
		"/a/4294967295/b/proto",
	}
	for _, s := range inputs {
		ct, err := ParseContentTopic(s)
		if err != nil {
			t.Errorf("ParseContentTopic(%q) failed: %v", s, err)
			continue
		}
		if got := ct.String(); got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}
}

func TestParseContentTopicMalformed(t *testing.T) {
	inputs := []string{
		"",
		"myapp/1/chat/proto",
		"/myapp/1/chat",
		"/myapp/1/chat/proto/extra",
		"/myapp/one/chat/proto",
		"/myapp/-1/chat/proto",
		"/myapp/1/chat/json",
		"//1/chat/proto",
		"/myapp/1//proto",
		"/myapp/1/chat/",
	}
	for _, s := range inputs {
		_, err := ParseContentTopic(s)
		if err == nil {
			t.Errorf("ParseContentTopic(%q) should have failed", s)
			continue
		}
		var malformed *MalformedTopicError
		if !errors.As(err, &malformed) {
			t.Errorf("ParseContentTopic(%q) returned %T, want *MalformedTopicError", s, err)
		}
	}
}

func TestParsePubSubTopic(t *testing.T) {
	pt, err := ParsePubSubTopic("/waku/2/default-waku/proto")
	if err != nil {
		t.Fatalf("ParsePubSubTopic failed: %v", err)
	}
	if pt.TopicName != "default-waku" {
		t.Errorf("expected topic name %q, got %q", "default-waku", pt.TopicName)
	}
	if pt.Encoding != EncodingProto {
		t.Errorf("expected proto encoding, got %v", pt.Encoding)
	}
	if got := pt.String(); got != "/waku/2/default-waku/proto" {
		t.Errorf("formatting back gave %q", got)
	}
}

func TestParsePubSubTopicWrongVersionSegment(t *testing.T) {
	if _, err := ParsePubSubTopic("/waku/1/default-waku/proto"); err == nil {
		t.Error("pub/sub topic with version segment 1 should not parse")
	}
}

func TestParsePubSubTopicMalformed(t *testing.T) {
	inputs := []string{
		"",
		"/waku/2/default-waku",
		"/waku/2//proto",
		"/waku/2/default-waku/",
		"/waku/2/default-waku/json",
		"/other/2/default-waku/proto",
		"waku/2/default-waku/proto",
	}
	for _, s := range inputs {
		if _, err := ParsePubSubTopic(s); err == nil {
			t.Errorf("ParsePubSubTopic(%q) should have failed", s)
		}
	}
}

func TestPubSubTopicRoundTrip(t *testing.T) {
	inputs := []string{
		"/waku/2/default-waku/proto",
		"/waku/2/store/rlp",
		"/waku/2/x/rfc26",
	}
	for _, s := range inputs {
		pt, err := ParsePubSubTopic(s)
		if err != nil {
			t.Errorf("ParsePubSubTopic(%q) failed: %v", s, err)
			continue
		}
		if got := pt.String(); got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}
}

func TestParseEncodingCaseInsensitive(t *testing.T) {
	for _, s := range []string{"PROTO", "Proto", "proto"} {
		enc, err := ParseEncoding(s)
		if err != nil {
			t.Fatalf("ParseEncoding(%q) failed: %v", s, err)
		}
		if enc != EncodingProto {
			t.Errorf("ParseEncoding(%q) = %v, want proto", s, enc)
		}
		if enc.String() != "proto" {
			t.Errorf("canonical form of %q is %q, want lowercase", s, enc.String())
		}
	}

	ct, err := ParseContentTopic("/myapp/1/chat/PROTO")
	if err != nil {
		t.Fatalf("uppercase encoding token should parse: %v", err)
	}
	if got := ct.String(); got != "/myapp/1/chat/proto" {
		t.Errorf("canonical form should lowercase the encoding, got %q", got)
	}
}

func TestDefaultPubSubTopic(t *testing.T) {
	if got := DefaultPubSubTopic().String(); got != "/waku/2/default-waku/proto" {
		t.Errorf("default pub/sub topic is %q", got)
	}
}

func TestTopicJSON(t *testing.T) {
	ct, _ := ParseContentTopic("/myapp/1/chat/proto")
	data, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"/myapp/1/chat/proto"` {
		t.Errorf("content topic marshals as %s", data)
	}

	var back ContentTopic
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != ct {
		t.Errorf("unmarshal gave %+v, want %+v", back, ct)
	}

	var bad ContentTopic
	if err := json.Unmarshal([]byte(`"/broken"`), &bad); err == nil {
		t.Error("unmarshal of a malformed topic string should fail")
	}
}
