package waku

import (
	"encoding/json"
	"time"

	"github.com/opd-ai/waku/engine"
	"github.com/opd-ai/waku/message"
)

// StoreQuery retrieves historical messages from a store peer. The query
// is validated for shape only; its semantics belong to the store peer.
// An empty peerID lets the engine pick a store peer. A returned
// response with non-nil PagingOptions carries the cursor for the next
// page.
func (n *RunningNode) StoreQuery(query message.StoreQuery, peerID string, timeout time.Duration) (message.StoreResponse, error) {
	if err := n.usable(); err != nil {
		return message.StoreResponse{}, err
	}
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return message.StoreResponse{}, err
	}
	return engine.Decode[message.StoreResponse](n.engine.StoreQuery(string(queryJSON), peerID, timeoutMs(timeout)))
}
