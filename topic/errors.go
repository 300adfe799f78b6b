package topic

import "fmt"

// MalformedTopicError reports a topic string that does not match its
// grammar. Grammar holds the expected shape, Input the offending string.
type MalformedTopicError struct {
	Grammar string
	Input   string
}

func (e *MalformedTopicError) Error() string {
	return fmt.Sprintf("malformed topic: expected %s, got %q", e.Grammar, e.Input)
}
