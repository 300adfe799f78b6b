package engine

// Engine is the native Waku engine's call surface, one method per entry
// point. Each method returns the raw tagged JSON payload described in
// the package documentation; decoding it is the caller's job, via
// Decode. Implementations must be safe for concurrent use: the client
// layer serializes node creation and teardown but nothing else.
//
// Timeouts are advisory millisecond values forwarded to the engine; zero
// means no timeout. Key material crosses the boundary hex encoded.
type Engine interface {
	// New constructs the engine's node from a JSON configuration.
	New(configJSON string) string
	// Start mounts the configured protocols and starts the node.
	Start() string
	// Stop tears the node down.
	Stop() string

	// PeerID returns the node's own base58 peer id.
	PeerID() string
	// ListenAddresses returns the multiaddresses the node listens on.
	ListenAddresses() string
	// AddPeer records a peer multiaddress and protocol in the peer
	// store, answering with the peer's id.
	AddPeer(address, protocolID string) string
	// ConnectPeer dials a peer by multiaddress.
	ConnectPeer(address string, timeoutMs int) string
	// ConnectPeerID dials a known peer by id.
	ConnectPeerID(peerID string, timeoutMs int) string
	// DisconnectPeer drops the connection to a peer.
	DisconnectPeer(peerID string) string
	// PeerCount returns the number of connected peers.
	PeerCount() string
	// Peers lists the peer store.
	Peers() string

	// RelayPublish publishes a message on a pub/sub topic.
	RelayPublish(messageJSON, pubsubTopic string, timeoutMs int) string
	// RelayPublishEncryptAsymmetric encrypts the payload for publicKeyHex
	// and optionally signs it with signingKeyHex before publishing.
	RelayPublishEncryptAsymmetric(messageJSON, pubsubTopic, publicKeyHex, signingKeyHex string, timeoutMs int) string
	// RelayPublishEncryptSymmetric encrypts the payload with symKeyHex
	// and optionally signs it with signingKeyHex before publishing.
	RelayPublishEncryptSymmetric(messageJSON, pubsubTopic, symKeyHex, signingKeyHex string, timeoutMs int) string
	// RelayEnoughPeers reports whether the topic mesh has enough peers
	// to publish.
	RelayEnoughPeers(pubsubTopic string) string
	// RelaySubscribe joins a pub/sub topic.
	RelaySubscribe(pubsubTopic string) string
	// RelayUnsubscribe leaves a pub/sub topic.
	RelayUnsubscribe(pubsubTopic string) string

	// StoreQuery runs a paginated historical query against a store peer.
	StoreQuery(queryJSON, peerID string, timeoutMs int) string

	// LightpushPublish publishes through a lightpush peer.
	LightpushPublish(messageJSON, pubsubTopic, peerID string, timeoutMs int) string
	// LightpushPublishEncryptAsymmetric is the asymmetric-encryption
	// variant of LightpushPublish.
	LightpushPublishEncryptAsymmetric(messageJSON, pubsubTopic, peerID, publicKeyHex, signingKeyHex string, timeoutMs int) string
	// LightpushPublishEncryptSymmetric is the symmetric-encryption
	// variant of LightpushPublish.
	LightpushPublishEncryptSymmetric(messageJSON, pubsubTopic, peerID, symKeyHex, signingKeyHex string, timeoutMs int) string

	// DecodeSymmetric decrypts a received version-1 message with a
	// symmetric key.
	DecodeSymmetric(messageJSON, symKeyHex string) string
	// DecodeAsymmetric decrypts a received version-1 message with a
	// secp256k1 private key.
	DecodeAsymmetric(messageJSON, privateKeyHex string) string
}
