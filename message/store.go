package message

import "github.com/opd-ai/waku/topic"

// ContentFilter selects messages by content topic in filter and store
// criteria.
type ContentFilter struct {
	ContentTopic topic.ContentTopic `json:"contentTopic"`
}

// FilterSubscription is the criteria used to subscribe to a filter node.
type FilterSubscription struct {
	ContentFilters []ContentFilter    `json:"contentFilters"`
	PubSubTopic    *topic.PubSubTopic `json:"pubsubTopic,omitempty"`
}

// StoreQuery is the criteria used to retrieve historical messages from a
// store node. Time bounds are inclusive Unix nanosecond timestamps.
// Validated for shape only; the store peer owns the semantics.
type StoreQuery struct {
	PubSubTopic    *topic.PubSubTopic `json:"pubsubTopic,omitempty"`
	ContentFilters []ContentFilter    `json:"contentFilters"`
	StartTime      *int64             `json:"startTime,omitempty"`
	EndTime        *int64             `json:"endTime,omitempty"`
	PagingOptions  *PagingOptions     `json:"pagingOptions,omitempty"`
}

// StoreResponse is a page of historical messages. A non-nil
// PagingOptions carries the cursor from which to resume the query.
type StoreResponse struct {
	Messages      []Message      `json:"messages"`
	PagingOptions *PagingOptions `json:"pagingOptions,omitempty"`
}

// PagingOptions controls store-query pagination. With no cursor, paging
// starts from the beginning of the result list when Forward is true and
// from the end otherwise.
type PagingOptions struct {
	PageSize uint64        `json:"pageSize"`
	Cursor   *MessageIndex `json:"cursor,omitempty"`
	Forward  bool          `json:"forward"`
}

// MessageIndex locates a message within a store node's history.
type MessageIndex struct {
	// Digest is the hash of the message at this index.
	Digest string `json:"digest"`
	// ReceiverTime is the Unix nanosecond timestamp at which the store
	// node received the message.
	ReceiverTime int64 `json:"receiverTime"`
	// SenderTime is the Unix nanosecond timestamp stamped by the sender.
	SenderTime  int64             `json:"senderTime"`
	PubSubTopic topic.PubSubTopic `json:"pubsubTopic"`
}
