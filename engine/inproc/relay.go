package inproc

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	sha256 "github.com/minio/sha256-simd"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/waku/message"
	"github.com/opd-ai/waku/topic"
)

// parsePublishArgs validates the message JSON and resolves the pub/sub
// topic, falling back to the default topic for an empty string.
func parsePublishArgs(messageJSON, pubsubTopic string) (message.Message, topic.PubSubTopic, string) {
	var msg message.Message
	if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
		return message.Message{}, topic.PubSubTopic{}, errorPayload("invalid message: %v", err)
	}

	pt := topic.DefaultPubSubTopic()
	if pubsubTopic != "" {
		parsed, err := topic.ParsePubSubTopic(pubsubTopic)
		if err != nil {
			return message.Message{}, topic.PubSubTopic{}, errorPayload("invalid pubsub topic: %v", err)
		}
		pt = parsed
	}
	return msg, pt, ""
}

// messageHash computes the content-addressed message id: the hex sha256
// over the payload, content topic, pub/sub topic and version.
func messageHash(msg message.Message, pt topic.PubSubTopic) string {
	h := sha256.New()
	h.Write(msg.Payload)
	h.Write([]byte(msg.ContentTopic.String()))
	h.Write([]byte(pt.String()))
	var version [4]byte
	binary.BigEndian.PutUint32(version[:], msg.Version)
	h.Write(version[:])
	return hex.EncodeToString(h.Sum(nil))
}

// record appends a message to the topic history, dropping the oldest
// entry past the history cap. Callers must hold e.mu.
func (e *Engine) record(msg message.Message, pt topic.PubSubTopic, id string) {
	entry := storedMessage{
		msg: msg,
		index: message.MessageIndex{
			Digest:       id,
			ReceiverTime: time.Now().UnixNano(),
			SenderTime:   msg.Timestamp,
			PubSubTopic:  pt,
		},
	}
	key := pt.String()
	history := append(e.history[key], entry)
	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}
	e.history[key] = history
}

// publish validates, records and acknowledges one message. Callers must
// hold e.mu.
func (e *Engine) publish(messageJSON, pubsubTopic string) string {
	msg, pt, errPayload := parsePublishArgs(messageJSON, pubsubTopic)
	if errPayload != "" {
		return errPayload
	}

	id := messageHash(msg, pt)
	e.record(msg, pt, id)

	logrus.WithFields(logrus.Fields{
		"messageID":    id,
		"pubsubTopic":  pt.String(),
		"contentTopic": msg.ContentTopic.String(),
	}).Debug("message published")

	return resultPayload(id)
}

// RelayPublish publishes a message on a pub/sub topic. The in-process
// relay has no mesh: the message lands directly in the node's history.
func (e *Engine) RelayPublish(messageJSON, pubsubTopic string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	return e.publish(messageJSON, pubsubTopic)
}

// RelayPublishEncryptAsymmetric encrypts the payload for the given
// public key, optionally signs it, and publishes the version-1 message.
func (e *Engine) RelayPublishEncryptAsymmetric(messageJSON, pubsubTopic, publicKeyHex, signingKeyHex string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	sealed, errPayload := sealAsymmetric(messageJSON, publicKeyHex, signingKeyHex)
	if errPayload != "" {
		return errPayload
	}
	return e.publish(sealed, pubsubTopic)
}

// RelayPublishEncryptSymmetric encrypts the payload with the given
// symmetric key, optionally signs it, and publishes the version-1
// message.
func (e *Engine) RelayPublishEncryptSymmetric(messageJSON, pubsubTopic, symKeyHex, signingKeyHex string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	sealed, errPayload := sealSymmetric(messageJSON, symKeyHex, signingKeyHex)
	if errPayload != "" {
		return errPayload
	}
	return e.publish(sealed, pubsubTopic)
}

// RelayEnoughPeers reports whether enough peers are connected to publish
// on the topic, per the node's minPeersToPublish configuration.
func (e *Engine) RelayEnoughPeers(pubsubTopic string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	if pubsubTopic != "" {
		if _, err := topic.ParsePubSubTopic(pubsubTopic); err != nil {
			return errorPayload("invalid pubsub topic: %v", err)
		}
	}
	return resultPayload(e.connectedPeerCount() >= e.cfg.MinPeersToPublish)
}

// RelaySubscribe joins a pub/sub topic.
func (e *Engine) RelaySubscribe(pubsubTopic string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	pt := topic.DefaultPubSubTopic()
	if pubsubTopic != "" {
		parsed, err := topic.ParsePubSubTopic(pubsubTopic)
		if err != nil {
			return errorPayload("invalid pubsub topic: %v", err)
		}
		pt = parsed
	}
	e.subscriptions[pt.String()] = struct{}{}

	logrus.WithFields(logrus.Fields{
		"pubsubTopic": pt.String(),
	}).Debug("subscribed to pubsub topic")

	return resultPayload(true)
}

// RelayUnsubscribe leaves a pub/sub topic. Leaving a topic the node is
// not subscribed to answers with an error tag.
func (e *Engine) RelayUnsubscribe(pubsubTopic string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	pt := topic.DefaultPubSubTopic()
	if pubsubTopic != "" {
		parsed, err := topic.ParsePubSubTopic(pubsubTopic)
		if err != nil {
			return errorPayload("invalid pubsub topic: %v", err)
		}
		pt = parsed
	}
	key := pt.String()
	if _, ok := e.subscriptions[key]; !ok {
		return errorPayload("not subscribed to topic %s", key)
	}
	delete(e.subscriptions, key)
	return resultPayload(true)
}
