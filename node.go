package waku

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/waku/engine"
	"github.com/opd-ai/waku/engine/inproc"
)

// Node is a constructed, not yet started node. Start consumes it and
// yields the running handle; Stop consumes it and tears the node down.
// The handle itself carries no node state: all effectful calls are
// forwarded to the engine, which owns its own thread-safety guarantees.
type Node struct {
	engine   engine.Engine
	registry *Registry

	mu       sync.Mutex
	consumed bool
}

// RunningNode is a started node. Its operations may be used from any
// number of goroutines; only Stop mutates the handle.
type RunningNode struct {
	engine   engine.Engine
	registry *Registry

	mu       sync.Mutex
	consumed bool
}

// New constructs a node with the given configuration (DefaultConfig when
// nil), backed by the in-process engine and the default registry. The
// process-wide claim is taken before the engine is called, so a
// concurrent New while a node is live fails deterministically with
// ErrAlreadyRunning; on construction failure the claim is released
// again.
func New(config *NodeConfig) (*Node, error) {
	return NewWithEngine(inproc.New(), DefaultRegistry(), config)
}

// NewWithEngine is New with an injected engine and registry.
func NewWithEngine(eng engine.Engine, registry *Registry, config *NodeConfig) (*Node, error) {
	if config == nil {
		config = DefaultConfig()
	}
	configJSON, err := config.encode()
	if err != nil {
		return nil, err
	}

	if err := registry.acquire(); err != nil {
		return nil, err
	}

	if err := engine.DecodeVoid(eng.New(configJSON)); err != nil {
		registry.release()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Debug("waku node constructed")

	return &Node{engine: eng, registry: registry}, nil
}

// Start mounts the protocols enabled at construction and returns the
// running handle. On success the initialized handle is consumed. On
// failure the handle stays usable for Stop only and the process-wide
// claim stays held; call Stop to release it.
func (n *Node) Start() (*RunningNode, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.consumed {
		return nil, ErrNodeConsumed
	}

	if err := engine.DecodeVoid(n.engine.Start()); err != nil {
		logrus.WithError(err).Error("waku node failed to start")
		return nil, err
	}
	n.consumed = true

	logrus.Info("waku node started")

	return &RunningNode{engine: n.engine, registry: n.registry}, nil
}

// Stop tears the node down and consumes the handle. The process-wide
// claim is released whether or not the engine's stop succeeds: teardown
// is best effort, and a failed native stop must not leave the process
// permanently unable to create a new node.
func (n *Node) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.consumed {
		return ErrNodeConsumed
	}
	n.consumed = true

	return stopNode(n.engine, n.registry)
}

// Stop tears the node down and consumes the handle, releasing the
// process-wide claim whether or not the engine's stop succeeds.
func (n *RunningNode) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.consumed {
		return ErrNodeConsumed
	}
	n.consumed = true

	return stopNode(n.engine, n.registry)
}

// stopNode releases the claim first, then forwards the engine's stop
// outcome.
func stopNode(eng engine.Engine, registry *Registry) error {
	registry.release()

	err := engine.DecodeVoid(eng.Stop())
	if err != nil {
		logrus.WithError(err).Warn("native stop failed; node claim released anyway")
		return err
	}

	logrus.Info("waku node stopped")
	return nil
}

// usable fails with ErrNodeConsumed once the running handle was stopped,
// without making any engine call.
func (n *RunningNode) usable() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.consumed {
		return ErrNodeConsumed
	}
	return nil
}

// timeoutMs renders a caller timeout for the engine boundary. The engine
// takes a signed 32-bit millisecond value, so larger timeouts clamp to
// math.MaxInt32 instead of erroring; zero means no timeout and passes
// through unchanged.
func timeoutMs(timeout time.Duration) int {
	ms := timeout.Milliseconds()
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	if ms < 0 {
		return 0
	}
	return int(ms)
}
