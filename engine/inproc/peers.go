package inproc

import (
	"sort"

	"github.com/multiformats/go-multiaddr"
	"github.com/sirupsen/logrus"
)

// wirePeer is the peer store record as it appears on the JSON boundary.
type wirePeer struct {
	PeerID    string   `json:"peerID"`
	Protocols []string `json:"protocols"`
	Addrs     []string `json:"addrs"`
	Connected bool     `json:"connected"`
}

// peerFromAddress parses a multiaddress and resolves it to a peer store
// entry, creating one when the peer is new. The address must carry a
// /p2p component naming the peer. Callers must hold e.mu.
func (e *Engine) peerFromAddress(address string) (*peerEntry, string) {
	addr, err := multiaddr.NewMultiaddr(address)
	if err != nil {
		return nil, errorPayload("invalid multiaddress %q: %v", address, err)
	}
	id, err := addr.ValueForProtocol(multiaddr.P_P2P)
	if err != nil {
		return nil, errorPayload("multiaddress %q carries no p2p component", address)
	}

	entry, ok := e.peers[id]
	if !ok {
		entry = &peerEntry{id: id}
		e.peers[id] = entry
	}
	have := false
	for _, known := range entry.addrs {
		if known == address {
			have = true
			break
		}
	}
	if !have {
		entry.addrs = append(entry.addrs, address)
	}
	return entry, ""
}

// AddPeer records a peer multiaddress and protocol in the peer store.
func (e *Engine) AddPeer(address, protocolID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	entry, errPayload := e.peerFromAddress(address)
	if errPayload != "" {
		return errPayload
	}
	if protocolID != "" {
		have := false
		for _, known := range entry.protocols {
			if known == protocolID {
				have = true
				break
			}
		}
		if !have {
			entry.protocols = append(entry.protocols, protocolID)
		}
	}

	logrus.WithFields(logrus.Fields{
		"peerID":   entry.id,
		"protocol": protocolID,
	}).Debug("peer added to peer store")

	return resultPayload(entry.id)
}

// ConnectPeer dials a peer by multiaddress. The timeout is advisory; the
// in-process engine connects immediately.
func (e *Engine) ConnectPeer(address string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	entry, errPayload := e.peerFromAddress(address)
	if errPayload != "" {
		return errPayload
	}
	entry.connected = true

	logrus.WithFields(logrus.Fields{
		"peerID":    entry.id,
		"timeoutMs": timeoutMs,
	}).Debug("peer connected")

	return resultPayload(true)
}

// ConnectPeerID dials a peer already present in the peer store.
func (e *Engine) ConnectPeerID(peerID string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	entry, ok := e.peers[peerID]
	if !ok {
		return errorPayload("peer %s not found in peer store", peerID)
	}
	entry.connected = true
	return resultPayload(true)
}

// DisconnectPeer drops the connection to a peer.
func (e *Engine) DisconnectPeer(peerID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	entry, ok := e.peers[peerID]
	if !ok {
		return errorPayload("peer %s not found in peer store", peerID)
	}
	entry.connected = false
	return resultPayload(true)
}

// PeerCount returns the number of connected peers.
func (e *Engine) PeerCount() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	return resultPayload(e.connectedPeerCount())
}

// connectedPeerCount counts connected peer store entries. Callers must
// hold e.mu.
func (e *Engine) connectedPeerCount() int {
	count := 0
	for _, entry := range e.peers {
		if entry.connected {
			count++
		}
	}
	return count
}

// Peers lists the peer store in stable peer-id order.
func (e *Engine) Peers() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	ids := make([]string, 0, len(e.peers))
	for id := range e.peers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	peers := make([]wirePeer, 0, len(ids))
	for _, id := range ids {
		entry := e.peers[id]
		peers = append(peers, wirePeer{
			PeerID:    entry.id,
			Protocols: entry.protocols,
			Addrs:     entry.addrs,
			Connected: entry.connected,
		})
	}
	return resultPayload(peers)
}
