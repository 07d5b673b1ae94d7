package repositories

import (
	"fmt"
	"time"
	"topic-archive/domain"
	"topic-archive/errors"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored as protobuf wire messages. Field numbers are part of the
// on-disk format and must never be reused.
const (
	streamFieldID          protowire.Number = 1
	streamFieldName        protowire.Number = 2
	streamFieldIsWebPublic protowire.Number = 3

	userFieldID       protowire.Number = 1
	userFieldFullName protowire.Number = 2
	userFieldEmail    protowire.Number = 3

	messageFieldID              protowire.Number = 1
	messageFieldStreamID        protowire.Number = 2
	messageFieldTopic           protowire.Number = 3
	messageFieldSenderID        protowire.Number = 4
	messageFieldPubDate         protowire.Number = 5
	messageFieldLastEditTime    protowire.Number = 6
	messageFieldContent         protowire.Number = 7
	messageFieldRenderedContent protowire.Number = 8
)

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// fieldDecoder consumes the value of a known field and returns the number of
// bytes read. Returning 0 lets decodeFields skip the field.
type fieldDecoder func(num protowire.Number, typ protowire.Type, b []byte) int

func decodeFields(b []byte, decode fieldDecoder) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", errors.ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]
		n = decode(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", errors.ErrMalformedRecord, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte, dst *uint64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = v
	}
	return n
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n > 0 {
		*dst = v
	}
	return n
}

func MarshalStream(stream domain.Stream) []byte {
	var b []byte
	b = appendVarint(b, streamFieldID, uint64(stream.ID))
	b = appendString(b, streamFieldName, stream.Name)
	b = appendVarint(b, streamFieldIsWebPublic, protowire.EncodeBool(stream.IsWebPublic))
	return b
}

func UnmarshalStream(b []byte) (domain.Stream, error) {
	var id, isWebPublic uint64
	var stream domain.Stream
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case streamFieldID:
			return consumeVarint(typ, b, &id)
		case streamFieldName:
			return consumeString(typ, b, &stream.Name)
		case streamFieldIsWebPublic:
			return consumeVarint(typ, b, &isWebPublic)
		}
		return 0
	})
	if err != nil {
		return domain.Stream{}, err
	}
	stream.ID = domain.StreamID(id)
	stream.IsWebPublic = protowire.DecodeBool(isWebPublic)
	return stream, nil
}

func MarshalUser(user domain.User) []byte {
	var b []byte
	b = appendVarint(b, userFieldID, uint64(user.ID))
	b = appendString(b, userFieldFullName, user.FullName)
	b = appendString(b, userFieldEmail, user.Email)
	return b
}

func UnmarshalUser(b []byte) (domain.User, error) {
	var id uint64
	var user domain.User
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case userFieldID:
			return consumeVarint(typ, b, &id)
		case userFieldFullName:
			return consumeString(typ, b, &user.FullName)
		case userFieldEmail:
			return consumeString(typ, b, &user.Email)
		}
		return 0
	})
	if err != nil {
		return domain.User{}, err
	}
	user.ID = domain.UserID(id)
	return user, nil
}

// MarshalDiskMessage encodes times as unix nanoseconds.
// A zero LastEditTime field is never written, so its absence means "not edited".
func MarshalDiskMessage(message DiskMessage) []byte {
	var b []byte
	b = appendString(b, messageFieldID, message.ID.String())
	b = appendVarint(b, messageFieldStreamID, uint64(message.StreamID))
	b = appendString(b, messageFieldTopic, message.Topic)
	b = appendVarint(b, messageFieldSenderID, uint64(message.SenderID))
	b = appendVarint(b, messageFieldPubDate, uint64(message.PubDate.UnixNano()))
	if message.LastEditTime != nil {
		b = appendVarint(b, messageFieldLastEditTime, uint64(message.LastEditTime.UnixNano()))
	}
	b = appendString(b, messageFieldContent, message.Content)
	b = appendString(b, messageFieldRenderedContent, message.RenderedContent)
	return b
}

func UnmarshalDiskMessage(b []byte) (DiskMessage, error) {
	var id string
	var streamID, senderID, pubDate, lastEdit uint64
	var hasLastEdit bool
	var message DiskMessage
	err := decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case messageFieldID:
			return consumeString(typ, b, &id)
		case messageFieldStreamID:
			return consumeVarint(typ, b, &streamID)
		case messageFieldTopic:
			return consumeString(typ, b, &message.Topic)
		case messageFieldSenderID:
			return consumeVarint(typ, b, &senderID)
		case messageFieldPubDate:
			return consumeVarint(typ, b, &pubDate)
		case messageFieldLastEditTime:
			hasLastEdit = typ == protowire.VarintType
			return consumeVarint(typ, b, &lastEdit)
		case messageFieldContent:
			return consumeString(typ, b, &message.Content)
		case messageFieldRenderedContent:
			return consumeString(typ, b, &message.RenderedContent)
		}
		return 0
	})
	if err != nil {
		return DiskMessage{}, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return DiskMessage{}, fmt.Errorf("%w: message id: %v", errors.ErrMalformedRecord, err)
	}
	message.ID = parsedID
	message.StreamID = domain.StreamID(streamID)
	message.SenderID = domain.UserID(senderID)
	message.PubDate = time.Unix(0, int64(pubDate)).UTC()
	if hasLastEdit {
		editedAt := time.Unix(0, int64(lastEdit)).UTC()
		message.LastEditTime = &editedAt
	}
	return message, nil
}
