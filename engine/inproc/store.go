package inproc

import (
	"encoding/json"
	"sort"

	"github.com/opd-ai/waku/message"
	"github.com/opd-ai/waku/topic"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// StoreQuery runs a paginated historical query over the node's recorded
// history. The peerID names the store peer to ask; the in-process engine
// always answers from its own history.
func (e *Engine) StoreQuery(queryJSON, peerID string, timeoutMs int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}

	var query message.StoreQuery
	if err := json.Unmarshal([]byte(queryJSON), &query); err != nil {
		return errorPayload("invalid store query: %v", err)
	}

	pt := topic.DefaultPubSubTopic()
	if query.PubSubTopic != nil {
		pt = *query.PubSubTopic
	}

	matched := filterHistory(e.history[pt.String()], query)
	page, next := paginate(matched, query.PagingOptions)

	messages := make([]message.Message, 0, len(page))
	for _, entry := range page {
		messages = append(messages, entry.msg)
	}
	return resultPayload(message.StoreResponse{Messages: messages, PagingOptions: next})
}

// filterHistory applies the query's content filters and inclusive time
// bounds, returning matches in ascending sender-time order.
func filterHistory(history []storedMessage, query message.StoreQuery) []storedMessage {
	matched := make([]storedMessage, 0, len(history))
	for _, entry := range history {
		if query.StartTime != nil && entry.msg.Timestamp < *query.StartTime {
			continue
		}
		if query.EndTime != nil && entry.msg.Timestamp > *query.EndTime {
			continue
		}
		if len(query.ContentFilters) > 0 {
			hit := false
			for _, filter := range query.ContentFilters {
				if filter.ContentTopic == entry.msg.ContentTopic {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		matched = append(matched, entry)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].msg.Timestamp < matched[j].msg.Timestamp
	})
	return matched
}

// paginate slices one page out of the matched history. Forward paging
// walks toward newer messages, backward paging toward older ones;
// messages within a page stay in ascending order either way. The
// returned cursor is nil once the direction is exhausted.
func paginate(matched []storedMessage, paging *message.PagingOptions) ([]storedMessage, *message.PagingOptions) {
	pageSize := defaultPageSize
	forward := true
	var cursor *message.MessageIndex
	if paging != nil {
		forward = paging.Forward
		cursor = paging.Cursor
		if paging.PageSize > 0 {
			pageSize = int(paging.PageSize)
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	cursorIdx := -1
	if cursor != nil {
		for i, entry := range matched {
			if entry.index.Digest == cursor.Digest {
				cursorIdx = i
				break
			}
		}
		if cursorIdx < 0 {
			// Unknown cursor: page from the edge the direction implies.
			cursor = nil
		}
	}

	var start, end int
	if forward {
		start = 0
		if cursor != nil {
			start = cursorIdx + 1
		}
		end = start + pageSize
		if end > len(matched) {
			end = len(matched)
		}
	} else {
		end = len(matched)
		if cursor != nil {
			end = cursorIdx
		}
		start = end - pageSize
		if start < 0 {
			start = 0
		}
	}
	if start >= end {
		return nil, nil
	}

	page := matched[start:end]

	var next *message.PagingOptions
	if forward && end < len(matched) {
		next = &message.PagingOptions{
			PageSize: uint64(pageSize),
			Cursor:   indexCopy(page[len(page)-1].index),
			Forward:  true,
		}
	}
	if !forward && start > 0 {
		next = &message.PagingOptions{
			PageSize: uint64(pageSize),
			Cursor:   indexCopy(page[0].index),
			Forward:  false,
		}
	}
	return page, next
}

func indexCopy(index message.MessageIndex) *message.MessageIndex {
	out := index
	return &out
}
