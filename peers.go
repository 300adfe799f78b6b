package waku

import (
	"time"

	"github.com/multiformats/go-multiaddr"

	"github.com/opd-ai/waku/engine"
)

// Peer is one peer store entry as reported by the engine.
type Peer struct {
	// PeerID is the peer's base58 id.
	PeerID string `json:"peerID"`
	// Protocols lists the protocol identifiers the peer supports.
	Protocols []string `json:"protocols"`
	// Addrs lists the peer's known multiaddresses.
	Addrs []string `json:"addrs"`
	// Connected reports whether the node currently holds a connection
	// to the peer.
	Connected bool `json:"connected"`
}

// PeerID returns the node's own base58 peer id.
func (n *RunningNode) PeerID() (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.PeerID())
}

// ListenAddresses returns the multiaddresses the node is listening on.
func (n *RunningNode) ListenAddresses() ([]multiaddr.Multiaddr, error) {
	if err := n.usable(); err != nil {
		return nil, err
	}
	raw, err := engine.Decode[[]string](n.engine.ListenAddresses())
	if err != nil {
		return nil, err
	}
	addrs := make([]multiaddr.Multiaddr, 0, len(raw))
	for _, s := range raw {
		addr, err := multiaddr.NewMultiaddr(s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// AddPeer records a peer multiaddress and protocol in the node's peer
// store and returns the peer's id.
func (n *RunningNode) AddPeer(address multiaddr.Multiaddr, protocolID string) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.AddPeer(address.String(), protocolID))
}

// ConnectPeer dials a peer by multiaddress. A zero timeout blocks until
// the engine resolves the dial; timeouts beyond the engine's 32-bit
// millisecond range are clamped.
func (n *RunningNode) ConnectPeer(address multiaddr.Multiaddr, timeout time.Duration) error {
	if err := n.usable(); err != nil {
		return err
	}
	return engine.DecodeVoid(n.engine.ConnectPeer(address.String(), timeoutMs(timeout)))
}

// ConnectPeerID dials a peer already present in the peer store.
func (n *RunningNode) ConnectPeerID(peerID string, timeout time.Duration) error {
	if err := n.usable(); err != nil {
		return err
	}
	return engine.DecodeVoid(n.engine.ConnectPeerID(peerID, timeoutMs(timeout)))
}

// DisconnectPeer drops the connection to a peer.
func (n *RunningNode) DisconnectPeer(peerID string) error {
	if err := n.usable(); err != nil {
		return err
	}
	return engine.DecodeVoid(n.engine.DisconnectPeer(peerID))
}

// PeerCount returns the number of connected peers.
func (n *RunningNode) PeerCount() (int, error) {
	if err := n.usable(); err != nil {
		return 0, err
	}
	return engine.Decode[int](n.engine.PeerCount())
}

// Peers lists the peers known to the node.
func (n *RunningNode) Peers() ([]Peer, error) {
	if err := n.usable(); err != nil {
		return nil, err
	}
	return engine.Decode[[]Peer](n.engine.Peers())
}
