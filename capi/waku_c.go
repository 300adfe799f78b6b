package main

import (
	"sync"
	"time"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/waku"
	"github.com/opd-ai/waku/message"
	"github.com/opd-ai/waku/topic"
)

// This is the main package required for building as c-shared.
// It provides C-compatible wrappers for the Go waku client surface.

func main() {} // Required for c-shared build mode

// nodeInstance tracks one handle through the lifecycle states.
type nodeInstance struct {
	node    *waku.Node
	running *waku.RunningNode
}

// Global registry of node instances by ID.
var (
	nodeInstances  = make(map[int]*nodeInstance)
	nextInstanceID = 1
	instancesMutex sync.RWMutex
)

// goString copies a C byte buffer into a Go string.
func goString(data *byte, length int) string {
	if data == nil || length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		buf[i] = *(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(data)) + uintptr(i)))
	}
	return string(buf)
}

// writeString copies a Go string into a C byte buffer, returning the
// number of bytes written or -1 when the buffer is too small.
func writeString(s string, out *byte, outLen int) int {
	if out == nil || len(s) > outLen {
		return -1
	}
	for i := 0; i < len(s); i++ {
		*(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(out)) + uintptr(i))) = s[i]
	}
	return len(s)
}

func lookup(handle unsafe.Pointer) *nodeInstance {
	if handle == nil {
		return nil
	}
	instancesMutex.RLock()
	defer instancesMutex.RUnlock()
	return nodeInstances[*(*int)(handle)]
}

// parseOptionalTopic parses an optional pub/sub topic buffer; an empty
// buffer selects the default topic.
func parseOptionalTopic(topicStr *byte, topicLen int) (*topic.PubSubTopic, bool) {
	s := goString(topicStr, topicLen)
	if s == "" {
		return nil, true
	}
	parsed, err := topic.ParsePubSubTopic(s)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

//export waku_new
func waku_new(configJSON *byte, configLen int) unsafe.Pointer {
	var config *waku.NodeConfig
	// An empty config buffer selects the defaults.
	if s := goString(configJSON, configLen); s != "" {
		config = &waku.NodeConfig{}
		if err := unmarshalConfig(s, config); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "waku_new",
				"error":    err.Error(),
			}).Error("Invalid node configuration")
			return nil
		}
	}

	node, err := waku.New(config)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "waku_new",
			"error":    err.Error(),
		}).Error("Failed to create waku node")
		return nil
	}

	instancesMutex.Lock()
	defer instancesMutex.Unlock()

	instanceID := nextInstanceID
	nextInstanceID++
	nodeInstances[instanceID] = &nodeInstance{node: node}

	handle := new(int)
	*handle = instanceID
	return unsafe.Pointer(handle)
}

//export waku_start
func waku_start(handle unsafe.Pointer) int {
	instance := lookup(handle)
	if instance == nil || instance.node == nil {
		return -1
	}

	running, err := instance.node.Start()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "waku_start",
			"error":    err.Error(),
		}).Error("Failed to start waku node")
		return -1
	}

	instancesMutex.Lock()
	instance.node = nil
	instance.running = running
	instancesMutex.Unlock()
	return 0
}

//export waku_stop
func waku_stop(handle unsafe.Pointer) int {
	instance := lookup(handle)
	if instance == nil {
		return -1
	}

	var err error
	switch {
	case instance.running != nil:
		err = instance.running.Stop()
	case instance.node != nil:
		err = instance.node.Stop()
	default:
		return -1
	}

	instancesMutex.Lock()
	delete(nodeInstances, *(*int)(handle))
	instancesMutex.Unlock()

	if err != nil {
		return -1
	}
	return 0
}

//export waku_peer_id
func waku_peer_id(handle unsafe.Pointer, out *byte, outLen int) int {
	instance := lookup(handle)
	if instance == nil || instance.running == nil {
		return -1
	}
	peerID, err := instance.running.PeerID()
	if err != nil {
		return -1
	}
	return writeString(peerID, out, outLen)
}

//export waku_peer_cnt
func waku_peer_cnt(handle unsafe.Pointer) int {
	instance := lookup(handle)
	if instance == nil || instance.running == nil {
		return -1
	}
	count, err := instance.running.PeerCount()
	if err != nil {
		return -1
	}
	return count
}

//export waku_relay_subscribe
func waku_relay_subscribe(handle unsafe.Pointer, topicStr *byte, topicLen int) int {
	instance := lookup(handle)
	if instance == nil || instance.running == nil {
		return -1
	}
	pubsubTopic, ok := parseOptionalTopic(topicStr, topicLen)
	if !ok {
		return -1
	}
	if err := instance.running.RelaySubscribe(pubsubTopic); err != nil {
		return -1
	}
	return 0
}

//export waku_relay_unsubscribe
func waku_relay_unsubscribe(handle unsafe.Pointer, topicStr *byte, topicLen int) int {
	instance := lookup(handle)
	if instance == nil || instance.running == nil {
		return -1
	}
	pubsubTopic, ok := parseOptionalTopic(topicStr, topicLen)
	if !ok {
		return -1
	}
	if err := instance.running.RelayUnsubscribe(pubsubTopic); err != nil {
		return -1
	}
	return 0
}

//export waku_relay_publish
func waku_relay_publish(handle unsafe.Pointer, messageJSON *byte, messageLen int, topicStr *byte, topicLen int, timeoutMs int, out *byte, outLen int) int {
	instance := lookup(handle)
	if instance == nil || instance.running == nil {
		return -1
	}

	var msg message.Message
	if err := unmarshalMessage(goString(messageJSON, messageLen), &msg); err != nil {
		return -1
	}
	pubsubTopic, ok := parseOptionalTopic(topicStr, topicLen)
	if !ok {
		return -1
	}

	id, err := instance.running.RelayPublish(msg, pubsubTopic, time.Duration(timeoutMs)*time.Millisecond)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "waku_relay_publish",
			"error":    err.Error(),
		}).Error("Failed to publish message")
		return -1
	}
	return writeString(id, out, outLen)
}
