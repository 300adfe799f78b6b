package inproc

import (
	"encoding/json"
	"fmt"
	"testing"

	wakuengine "github.com/opd-ai/waku/engine"
)

// Compile-time check that the in-process engine covers the boundary.
var _ wakuengine.Engine = (*Engine)(nil)

func startedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	if err := wakuengine.DecodeVoid(e.New("")); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.Start()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return e
}

func TestEngineLifecycle(t *testing.T) {
	e := New()

	// Operations before New answer with an error tag.
	if err := wakuengine.DecodeVoid(e.Start()); err == nil {
		t.Error("Start before New should fail")
	}
	if _, err := wakuengine.Decode[string](e.PeerID()); err == nil {
		t.Error("PeerID before New should fail")
	}

	if err := wakuengine.DecodeVoid(e.New(`{"host":"127.0.0.1","port":60010}`)); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.New("")); err == nil {
		t.Error("second New should fail while a node exists")
	}

	addrs, err := wakuengine.Decode[[]string](e.ListenAddresses())
	if err != nil {
		t.Fatalf("ListenAddresses failed: %v", err)
	}
	if len(addrs) != 1 || addrs[0] != "/ip4/127.0.0.1/tcp/60010" {
		t.Errorf("unexpected listen addresses %v", addrs)
	}

	if err := wakuengine.DecodeVoid(e.Start()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.Start()); err == nil {
		t.Error("double Start should fail")
	}

	if err := wakuengine.DecodeVoid(e.Stop()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.New("")); err != nil {
		t.Errorf("New after Stop failed: %v", err)
	}
}

func TestEngineStablePeerID(t *testing.T) {
	const nodeKey = "1122334455667788112233445566778811223344556677881122334455667788"

	id := func() string {
		e := New()
		if err := wakuengine.DecodeVoid(e.New(fmt.Sprintf(`{"nodeKey":%q}`, nodeKey))); err != nil {
			t.Fatalf("New failed: %v", err)
		}
		peerID, err := wakuengine.Decode[string](e.PeerID())
		if err != nil {
			t.Fatalf("PeerID failed: %v", err)
		}
		return peerID
	}

	first, second := id(), id()
	if first != second {
		t.Errorf("peer id not derived from node key: %q vs %q", first, second)
	}
	if first == "" {
		t.Error("empty peer id")
	}
}

func TestEngineRejectsBadConfig(t *testing.T) {
	e := New()
	if err := wakuengine.DecodeVoid(e.New(`{broken`)); err == nil {
		t.Error("invalid config JSON should fail")
	}
	if err := wakuengine.DecodeVoid(e.New(`{"nodeKey":"abcd"}`)); err == nil {
		t.Error("short node key should fail")
	}
	// Failed News must not leave a half-constructed node behind.
	if err := wakuengine.DecodeVoid(e.New("")); err != nil {
		t.Errorf("New after rejected configs failed: %v", err)
	}
}

func TestAddPeerRequiresP2PComponent(t *testing.T) {
	e := startedEngine(t)

	if _, err := wakuengine.Decode[string](e.AddPeer("/ip4/127.0.0.1/tcp/60003", "/vac/waku/store/2.0.0")); err == nil {
		t.Error("address without p2p component should fail")
	}
	if _, err := wakuengine.Decode[string](e.AddPeer("not a multiaddr", "")); err == nil {
		t.Error("invalid multiaddress should fail")
	}
}

func TestRelayRejectsMalformedInput(t *testing.T) {
	e := startedEngine(t)

	if err := wakuengine.DecodeVoid(e.RelaySubscribe("/waku/1/x/proto")); err == nil {
		t.Error("malformed pubsub topic should fail")
	}
	if _, err := wakuengine.Decode[string](e.RelayPublish(`{"payload":"AQ==","contentTopic":"/bad","version":0,"timestamp":1}`, "", 0)); err == nil {
		t.Error("message with malformed content topic should fail")
	}
	if _, err := wakuengine.Decode[string](e.RelayPublish(`not json`, "", 0)); err == nil {
		t.Error("non-JSON message should fail")
	}
}

func TestStopClearsState(t *testing.T) {
	e := startedEngine(t)

	if err := wakuengine.DecodeVoid(e.RelaySubscribe("")); err != nil {
		t.Fatalf("RelaySubscribe failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.Stop()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.New("")); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := wakuengine.DecodeVoid(e.Start()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// The old subscription did not survive teardown.
	if err := wakuengine.DecodeVoid(e.RelayUnsubscribe("")); err == nil {
		t.Error("subscription should not survive Stop")
	}
}

func TestResultPayloadShape(t *testing.T) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal([]byte(resultPayload(42)), &tagged); err != nil {
		t.Fatalf("result payload is not JSON: %v", err)
	}
	if _, ok := tagged["result"]; !ok {
		t.Error("result payload missing result tag")
	}

	if err := json.Unmarshal([]byte(errorPayload("boom %d", 7)), &tagged); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	raw, ok := tagged["error"]
	if !ok {
		t.Fatal("error payload missing error tag")
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil || msg != "boom 7" {
		t.Errorf("error message %q, want %q", msg, "boom 7")
	}
}
