package repositories

import (
	"encoding/hex"
	"fmt"
	"time"
	"topic-archive/domain"
)

const (
	StreamPrefix  = "stream:"
	UserPrefix    = "user:"
	MessagePrefix = "msg:"
)

func streamKey(id domain.StreamID) []byte {
	return []byte(fmt.Sprintf("%s%019d", StreamPrefix, id))
}

func userKey(id domain.UserID) []byte {
	return []byte(fmt.Sprintf("%s%019d", UserPrefix, id))
}

// topicPrefix is "msg:{stream_id}:{hex(topic)}:".
// The topic is hex encoded so that separators inside a topic name cannot make
// one topic a prefix of another, and so that matching stays byte-exact.
func topicPrefix(streamID domain.StreamID, topic string) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s:", MessagePrefix, streamID, hex.EncodeToString([]byte(topic))))
}

// messageKey appends "{pub_date_sortable}:{uuid}" to the topic prefix.
// The uuid separates messages published in the same nanosecond.
func messageKey(message DiskMessage) []byte {
	return append(topicPrefix(message.StreamID, message.Topic),
		fmt.Sprintf("%020d:%s", sortableNanos(message.PubDate), message.ID)...)
}

// sortableNanos flips the sign bit of the unix nanoseconds so that dates
// before 1970 still sort before later ones once zero-padded to 20 digits.
func sortableNanos(t time.Time) uint64 {
	return uint64(t.UnixNano()) ^ (1 << 63)
}
