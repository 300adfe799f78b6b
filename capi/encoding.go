package main

import (
	"encoding/json"

	"github.com/opd-ai/waku"
	"github.com/opd-ai/waku/message"
)

func unmarshalConfig(s string, config *waku.NodeConfig) error {
	return json.Unmarshal([]byte(s), config)
}

func unmarshalMessage(s string, msg *message.Message) error {
	return json.Unmarshal([]byte(s), msg)
}
