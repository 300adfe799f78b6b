package waku

import "encoding/json"

// NodeConfig is the node configuration handed to the engine's
// constructor. Fields map one to one onto the engine's JSON config; the
// zero value of a field leaves the engine default in place.
type NodeConfig struct {
	// Host is the address the node listens on.
	Host string `json:"host,omitempty"`
	// Port is the TCP listen port.
	Port int `json:"port,omitempty"`
	// AdvertiseAddr is an extra multiaddress advertised to peers.
	AdvertiseAddr string `json:"advertiseAddr,omitempty"`
	// NodeKey is a hex-encoded secp256k1 private key; the engine
	// generates one when empty.
	NodeKey string `json:"nodeKey,omitempty"`
	// KeepAliveInterval is the peer keep-alive period in seconds.
	KeepAliveInterval int `json:"keepAliveInterval,omitempty"`
	// Relay enables the relay protocol. Nil leaves the engine default.
	Relay *bool `json:"relay,omitempty"`
	// MinPeersToPublish is the peer threshold RelayEnoughPeers checks.
	MinPeersToPublish int `json:"minPeersToPublish,omitempty"`
}

// DefaultConfig returns the configuration used when New receives nil.
func DefaultConfig() *NodeConfig {
	relay := true
	return &NodeConfig{
		Host:  "0.0.0.0",
		Port:  60000,
		Relay: &relay,
	}
}

// encode renders the configuration as the engine's JSON config string.
func (c *NodeConfig) encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
