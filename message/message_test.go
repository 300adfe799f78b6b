package message

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/waku/topic"
)

func testContentTopic(t *testing.T) topic.ContentTopic {
	t.Helper()
	ct, err := topic.ParseContentTopic("/myapp/1/chat/proto")
	if err != nil {
		t.Fatalf("failed to parse content topic: %v", err)
	}
	return ct
}

func TestNewMessage(t *testing.T) {
	before := time.Now().UnixNano()
	msg := NewMessage([]byte("hello"), testContentTopic(t))
	after := time.Now().UnixNano()

	if string(msg.Payload) != "hello" {
		t.Errorf("payload changed: %q", msg.Payload)
	}
	if msg.Version != 0 {
		t.Errorf("expected version 0, got %d", msg.Version)
	}
	if msg.Timestamp < before || msg.Timestamp > after {
		t.Errorf("timestamp %d outside [%d, %d]", msg.Timestamp, before, after)
	}
}

func TestMessageWireShape(t *testing.T) {
	msg := Message{
		Payload:      []byte{0x01, 0x02},
		ContentTopic: testContentTopic(t),
		Version:      1,
		Timestamp:    1700000000000000000,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	wire := string(data)
	for _, field := range []string{`"payload"`, `"contentTopic":"/myapp/1/chat/proto"`, `"version":1`, `"timestamp":1700000000000000000`} {
		if !strings.Contains(wire, field) {
			t.Errorf("wire form %s missing %s", wire, field)
		}
	}

	var back Message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(back.Payload) != string(msg.Payload) || back.ContentTopic != msg.ContentTopic {
		t.Errorf("round trip gave %+v", back)
	}
}

func TestStoreQueryWireShape(t *testing.T) {
	pt := topic.DefaultPubSubTopic()
	start := int64(1)
	query := StoreQuery{
		PubSubTopic:    &pt,
		ContentFilters: []ContentFilter{{ContentTopic: testContentTopic(t)}},
		StartTime:      &start,
		PagingOptions:  &PagingOptions{PageSize: 10, Forward: true},
	}
	data, err := json.Marshal(query)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	wire := string(data)
	for _, field := range []string{`"pubsubTopic":"/waku/2/default-waku/proto"`, `"contentFilters"`, `"startTime":1`, `"pageSize":10`, `"forward":true`} {
		if !strings.Contains(wire, field) {
			t.Errorf("wire form %s missing %s", wire, field)
		}
	}
	if strings.Contains(wire, "endTime") {
		t.Errorf("unset optional field should be omitted: %s", wire)
	}
}

func TestSymmetricKeyHex(t *testing.T) {
	key, err := GenerateSymmetricKey()
	if err != nil {
		t.Fatalf("GenerateSymmetricKey failed: %v", err)
	}
	back, err := SymmetricKeyFromHex(key.Hex())
	if err != nil {
		t.Fatalf("SymmetricKeyFromHex failed: %v", err)
	}
	if back != key {
		t.Error("hex round trip changed the key")
	}

	prefixed, err := SymmetricKeyFromHex("0x" + key.Hex())
	if err != nil {
		t.Fatalf("0x prefix should be accepted: %v", err)
	}
	if prefixed != key {
		t.Error("prefixed parse changed the key")
	}

	if _, err := SymmetricKeyFromHex("abcd"); err == nil {
		t.Error("short key should be rejected")
	}
}

func TestGenerateKeyPair(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	if !priv.PubKey().IsEqual(pub) {
		t.Error("public key does not match private key")
	}
}
