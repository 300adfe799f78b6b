package waku

import (
	"encoding/hex"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/opd-ai/waku/engine"
	"github.com/opd-ai/waku/message"
	"github.com/opd-ai/waku/topic"
)

// LightpushPublish publishes a message through a lightpush peer, the
// lightweight publish path for nodes that do not run relay themselves.
// An empty peerID lets the engine pick a lightpush peer.
func (n *RunningNode) LightpushPublish(msg message.Message, pubsubTopic *topic.PubSubTopic, peerID string, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.LightpushPublish(messageJSON, topicArg(pubsubTopic), peerID, timeoutMs(timeout)))
}

// LightpushPublishEncryptAsymmetric encrypts the message payload for
// publicKey, optionally signs it, and publishes it through a lightpush
// peer.
func (n *RunningNode) LightpushPublishEncryptAsymmetric(msg message.Message, pubsubTopic *topic.PubSubTopic, peerID string, publicKey *secp256k1.PublicKey, signingKey *secp256k1.PrivateKey, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	publicKeyHex := hex.EncodeToString(publicKey.SerializeUncompressed())
	return engine.Decode[string](n.engine.LightpushPublishEncryptAsymmetric(
		messageJSON, topicArg(pubsubTopic), peerID, publicKeyHex, signingKeyArg(signingKey), timeoutMs(timeout)))
}

// LightpushPublishEncryptSymmetric encrypts the message payload with
// symKey, optionally signs it, and publishes it through a lightpush
// peer.
func (n *RunningNode) LightpushPublishEncryptSymmetric(msg message.Message, pubsubTopic *topic.PubSubTopic, peerID string, symKey message.SymmetricKey, signingKey *secp256k1.PrivateKey, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.LightpushPublishEncryptSymmetric(
		messageJSON, topicArg(pubsubTopic), peerID, symKey.Hex(), signingKeyArg(signingKey), timeoutMs(timeout)))
}
