// Package waku is the client-side control surface for a Waku peer-to-peer
// messaging node.
//
// The package manages the node's lifecycle and enforces the grammar of
// the two topic forms the node operates on; all networking, relay
// propagation, encryption and store-query execution happen inside a
// native engine reached through the engine boundary. A node handle moves
// through never-started, initialized, running and stopped, and at most
// one live node exists per process.
//
// The legal call sequence is encoded in the handle types: New returns a
// *Node carrying only Start and Stop, and Start returns a *RunningNode
// carrying the peer and relay operations, so publishing before Start
// does not compile.
//
// Example:
//
//	node, err := waku.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	running, err := node.Start()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer running.Stop()
//
//	if err := running.RelaySubscribe(nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	ct, _ := topic.ParseContentTopic("/myapp/1/chat/proto")
//	msg := message.NewMessage([]byte("hello"), ct)
//	id, err := running.RelayPublish(msg, nil, time.Second)
package waku
