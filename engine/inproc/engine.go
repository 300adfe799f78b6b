package inproc

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	sha256 "github.com/minio/sha256-simd"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/waku/message"
)

// historyCap bounds the per-topic message history; the oldest entries
// are dropped first.
const historyCap = 1024

// nodeConfig mirrors the engine's JSON node configuration.
type nodeConfig struct {
	Host              string `json:"host,omitempty"`
	Port              int    `json:"port,omitempty"`
	AdvertiseAddr     string `json:"advertiseAddr,omitempty"`
	NodeKey           string `json:"nodeKey,omitempty"`
	KeepAliveInterval int    `json:"keepAliveInterval,omitempty"`
	Relay             *bool  `json:"relay,omitempty"`
	MinPeersToPublish int    `json:"minPeersToPublish,omitempty"`
}

// peerEntry is one peer store record.
type peerEntry struct {
	id        string
	addrs     []string
	protocols []string
	connected bool
}

// storedMessage is one history record, carrying the index a store query
// pages over.
type storedMessage struct {
	msg   message.Message
	index message.MessageIndex
}

// Engine is the in-process engine. The zero value is not usable; build
// one with New.
type Engine struct {
	mu            sync.RWMutex
	created       bool
	running       bool
	cfg           nodeConfig
	nodeKey       *secp256k1.PrivateKey
	peerID        string
	listenAddrs   []string
	peers         map[string]*peerEntry
	subscriptions map[string]struct{}
	history       map[string][]storedMessage
}

// New returns an engine with no node constructed yet.
func New() *Engine {
	return &Engine{
		peers:         make(map[string]*peerEntry),
		subscriptions: make(map[string]struct{}),
		history:       make(map[string][]storedMessage),
	}
}

// resultPayload wraps a value in the engine's success tag.
func resultPayload(v interface{}) string {
	data, err := json.Marshal(map[string]interface{}{"result": v})
	if err != nil {
		// Only reachable for unmarshalable values, which the engine
		// never produces.
		return `{"error":"internal: unencodable result"}`
	}
	return string(data)
}

// errorPayload wraps a message in the engine's error tag.
func errorPayload(format string, args ...interface{}) string {
	data, _ := json.Marshal(map[string]string{"error": fmt.Sprintf(format, args...)})
	return string(data)
}

// New constructs the node from a JSON configuration. Only one node can
// exist at a time; a second New before Stop answers with an error tag.
func (e *Engine) New(configJSON string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.created {
		return errorPayload("waku node already initialized")
	}

	cfg := nodeConfig{Host: "0.0.0.0", Port: 60000, MinPeersToPublish: 0}
	if configJSON != "" {
		if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
			return errorPayload("invalid node config: %v", err)
		}
	}

	nodeKey, err := loadOrGenerateNodeKey(cfg.NodeKey)
	if err != nil {
		return errorPayload("invalid node key: %v", err)
	}

	e.cfg = cfg
	e.nodeKey = nodeKey
	e.peerID = derivePeerID(nodeKey.PubKey())
	e.listenAddrs = []string{fmt.Sprintf("/ip4/%s/tcp/%d", cfg.Host, cfg.Port)}
	if cfg.AdvertiseAddr != "" {
		e.listenAddrs = append(e.listenAddrs, cfg.AdvertiseAddr)
	}
	e.created = true

	logrus.WithFields(logrus.Fields{
		"peerID": e.peerID,
		"addrs":  e.listenAddrs,
	}).Debug("inproc engine node constructed")

	return resultPayload(true)
}

// Start mounts the node's protocols.
func (e *Engine) Start() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.created {
		return errorPayload("waku node is not initialized")
	}
	if e.running {
		return errorPayload("waku node already started")
	}
	e.running = true

	logrus.WithFields(logrus.Fields{
		"peerID": e.peerID,
	}).Info("inproc engine node started")

	return resultPayload(true)
}

// Stop tears the node down and clears all of its state, making a
// subsequent New possible.
func (e *Engine) Stop() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.created {
		return errorPayload("waku node is not initialized")
	}
	e.created = false
	e.running = false
	e.nodeKey = nil
	e.peerID = ""
	e.listenAddrs = nil
	e.peers = make(map[string]*peerEntry)
	e.subscriptions = make(map[string]struct{})
	e.history = make(map[string][]storedMessage)

	logrus.Info("inproc engine node stopped")

	return resultPayload(true)
}

// PeerID returns the node's own peer id.
func (e *Engine) PeerID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.created {
		return errorPayload("waku node is not initialized")
	}
	return resultPayload(e.peerID)
}

// ListenAddresses returns the node's listen multiaddresses.
func (e *Engine) ListenAddresses() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.created {
		return errorPayload("waku node is not initialized")
	}
	return resultPayload(e.listenAddrs)
}

// requireRunning answers with a non-empty error payload when the node is
// not in the running state. Callers must hold e.mu.
func (e *Engine) requireRunning() string {
	if !e.created {
		return errorPayload("waku node is not initialized")
	}
	if !e.running {
		return errorPayload("waku node is not started")
	}
	return ""
}

// loadOrGenerateNodeKey parses a hex secp256k1 private key, or generates
// a fresh one when the config carries none.
func loadOrGenerateNodeKey(hexKey string) (*secp256k1.PrivateKey, error) {
	if hexKey == "" {
		return secp256k1.GeneratePrivateKey()
	}
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("node key must be 32 bytes, got %d", len(raw))
	}
	return secp256k1.PrivKeyFromBytes(raw), nil
}

// derivePeerID builds a base58 multihash-style peer id from the node's
// public key.
func derivePeerID(pub *secp256k1.PublicKey) string {
	digest := sha256.Sum256(pub.SerializeCompressed())
	// 0x12 0x20: sha2-256 multihash header.
	return base58.Encode(append([]byte{0x12, 0x20}, digest[:]...))
}
