package waku

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/opd-ai/waku/engine"
	"github.com/opd-ai/waku/message"
	"github.com/opd-ai/waku/topic"
)

// topicArg renders an optional pub/sub topic for the engine boundary.
// Nil selects the engine's default topic.
func topicArg(pubsubTopic *topic.PubSubTopic) string {
	if pubsubTopic == nil {
		return ""
	}
	return pubsubTopic.String()
}

// encodeMessage renders a message for the engine boundary.
func encodeMessage(msg message.Message) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// signingKeyArg hex encodes an optional signing key.
func signingKeyArg(signingKey *secp256k1.PrivateKey) string {
	if signingKey == nil {
		return ""
	}
	return hex.EncodeToString(signingKey.Serialize())
}

// RelayPublish publishes a message over relay on the given pub/sub topic
// (the default topic when nil) and returns the message id, a
// content-addressed hash of the message.
func (n *RunningNode) RelayPublish(msg message.Message, pubsubTopic *topic.PubSubTopic, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.RelayPublish(messageJSON, topicArg(pubsubTopic), timeoutMs(timeout)))
}

// RelayPublishEncryptAsymmetric encrypts the message payload for
// publicKey, optionally signs it with signingKey (nil skips signing),
// and publishes it over relay.
func (n *RunningNode) RelayPublishEncryptAsymmetric(msg message.Message, pubsubTopic *topic.PubSubTopic, publicKey *secp256k1.PublicKey, signingKey *secp256k1.PrivateKey, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	publicKeyHex := hex.EncodeToString(publicKey.SerializeUncompressed())
	return engine.Decode[string](n.engine.RelayPublishEncryptAsymmetric(
		messageJSON, topicArg(pubsubTopic), publicKeyHex, signingKeyArg(signingKey), timeoutMs(timeout)))
}

// RelayPublishEncryptSymmetric encrypts the message payload with symKey,
// optionally signs it with signingKey (nil skips signing), and publishes
// it over relay.
func (n *RunningNode) RelayPublishEncryptSymmetric(msg message.Message, pubsubTopic *topic.PubSubTopic, symKey message.SymmetricKey, signingKey *secp256k1.PrivateKey, timeout time.Duration) (string, error) {
	if err := n.usable(); err != nil {
		return "", err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return "", err
	}
	return engine.Decode[string](n.engine.RelayPublishEncryptSymmetric(
		messageJSON, topicArg(pubsubTopic), symKey.Hex(), signingKeyArg(signingKey), timeoutMs(timeout)))
}

// RelayEnoughPeers reports whether the topic mesh has enough peers to
// publish on the given pub/sub topic (the default topic when nil).
func (n *RunningNode) RelayEnoughPeers(pubsubTopic *topic.PubSubTopic) (bool, error) {
	if err := n.usable(); err != nil {
		return false, err
	}
	return engine.Decode[bool](n.engine.RelayEnoughPeers(topicArg(pubsubTopic)))
}

// RelaySubscribe subscribes the node to a pub/sub topic (the default
// topic when nil) so relayed messages on it are received.
func (n *RunningNode) RelaySubscribe(pubsubTopic *topic.PubSubTopic) error {
	if err := n.usable(); err != nil {
		return err
	}
	return engine.DecodeVoid(n.engine.RelaySubscribe(topicArg(pubsubTopic)))
}

// RelayUnsubscribe closes the subscription to a pub/sub topic (the
// default topic when nil).
func (n *RunningNode) RelayUnsubscribe(pubsubTopic *topic.PubSubTopic) error {
	if err := n.usable(); err != nil {
		return err
	}
	return engine.DecodeVoid(n.engine.RelayUnsubscribe(topicArg(pubsubTopic)))
}

// DecodeSymmetric asks the engine to decrypt a received version-1
// message with a symmetric key.
func (n *RunningNode) DecodeSymmetric(msg message.Message, symKey message.SymmetricKey) (message.DecodedPayload, error) {
	if err := n.usable(); err != nil {
		return message.DecodedPayload{}, err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return message.DecodedPayload{}, err
	}
	return engine.Decode[message.DecodedPayload](n.engine.DecodeSymmetric(messageJSON, symKey.Hex()))
}

// DecodeAsymmetric asks the engine to decrypt a received version-1
// message with a secp256k1 private key.
func (n *RunningNode) DecodeAsymmetric(msg message.Message, privateKey *secp256k1.PrivateKey) (message.DecodedPayload, error) {
	if err := n.usable(); err != nil {
		return message.DecodedPayload{}, err
	}
	messageJSON, err := encodeMessage(msg)
	if err != nil {
		return message.DecodedPayload{}, err
	}
	privateKeyHex := hex.EncodeToString(privateKey.Serialize())
	return engine.Decode[message.DecodedPayload](n.engine.DecodeAsymmetric(messageJSON, privateKeyHex))
}
