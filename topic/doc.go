// Package topic implements the two Waku topic grammars: content topics
// and pub/sub topics.
//
// Content topics classify a message within an application and follow the
// form /{application-name}/{version}/{content-topic-name}/{encoding}.
// Pub/sub topics name the network-level relay channel and follow the
// fixed form /waku/2/{topic-name}/{encoding}. Both parse strictly and
// round-trip: formatting a parsed topic reproduces the input string.
//
// Example:
//
//	ct, err := topic.ParseContentTopic("/myapp/1/chat/proto")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ct.ApplicationName) // "myapp"
//	fmt.Println(ct.String())        // "/myapp/1/chat/proto"
package topic
