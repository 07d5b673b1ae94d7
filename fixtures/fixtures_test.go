package fixtures

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
	"topic-archive/domain"
	"topic-archive/mocks"
	"topic-archive/rendering"
	"topic-archive/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sample = `{
  "streams": [{"id": 1, "name": "general", "is_web_public": true}],
  "users": [{"id": 7, "full_name": "Prospero", "email": "prospero@zulip.com"}],
  "messages": [
    {"stream_id": 1, "topic": "lunch", "sender_id": 7, "pub_date": "2018-03-01T10:00:00Z", "content": "fish & chips?"},
    {"stream_id": 1, "topic": "lunch", "sender_id": 7, "pub_date": "2018-03-01T10:01:00+01:00",
     "last_edit_time": "2018-03-01T10:05:00+01:00", "content": "/me is hungry", "rendered_content": "<p>/me is hungry</p>"}
  ]
}`

func TestLoad(t *testing.T) {
	t.Run("should decode a valid fixture", func(t *testing.T) {
		req := require.New(t)
		fixture, err := Load(strings.NewReader(sample))
		req.NoError(err)
		req.Len(fixture.Streams, 1)
		req.Len(fixture.Users, 1)
		req.Len(fixture.Messages, 2)
		req.NotNil(fixture.Messages[1].LastEditTime)
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"users": [{"id": 1, "full_name": "X", "email": "nope"}]}`))
		require.Error(t, err)
	})

	t.Run("should reject a message without date", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"messages": [{"stream_id": 1, "topic": "t", "sender_id": 1, "content": "c"}]}`))
		require.ErrorContains(t, err, "pub_date")
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"streams": [`))
		require.Error(t, err)
	})
}

func TestImport(t *testing.T) {
	t.Run("should store every record", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		streams := mocks.NewMockIStreamRepository(ctrl)
		users := mocks.NewMockIUserRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)

		fixture, err := Load(strings.NewReader(sample))
		req.NoError(err)

		var stored []repositories.DiskMessage
		gomock.InOrder(
			streams.EXPECT().StoreStream(domain.Stream{ID: 1, Name: "general", IsWebPublic: true}).Return(nil),
			users.EXPECT().StoreUser(domain.User{ID: 7, FullName: "Prospero", Email: "prospero@zulip.com"}).Return(nil),
			messages.EXPECT().StoreMessage(gomock.Any()).DoAndReturn(func(m repositories.DiskMessage) error {
				stored = append(stored, m)
				return nil
			}).Times(2),
		)

		summary, err := Import(fixture, streams, users, messages)
		req.NoError(err)
		req.Equal(Summary{Streams: 1, Users: 1, Messages: 2}, summary)

		req.Len(stored, 2)
		req.Equal("<p>fish &amp; chips?</p>", stored[0].RenderedContent)
		req.True(time.Date(2018, 3, 1, 9, 1, 0, 0, time.UTC).Equal(stored[1].PubDate))
		req.True(time.Date(2018, 3, 1, 9, 5, 0, 0, time.UTC).Equal(*stored[1].LastEditTime))
		req.Equal(time.UTC, stored[1].PubDate.Location())
		req.True(rendering.IsStatusMessage(stored[1].Content, stored[1].RenderedContent))
		req.NotEqual(stored[0].ID, stored[1].ID)
	})

	t.Run("should keep message ids across imports", func(t *testing.T) {
		req := require.New(t)
		fixture, err := Load(strings.NewReader(sample))
		req.NoError(err)

		first, second := toDiskMessage(fixture.Messages[0]), toDiskMessage(fixture.Messages[0])
		req.Equal(first.ID, second.ID)
		req.NotEqual(first.ID, toDiskMessage(fixture.Messages[1]).ID)
	})

	t.Run("should use the id given by the fixture", func(t *testing.T) {
		req := require.New(t)
		fixture, err := Load(strings.NewReader(`{"messages": [{"id": "5b1a0b7e-3c4d-4e5f-8a9b-0c1d2e3f4a5b",
			"stream_id": 1, "topic": "t", "sender_id": 1, "pub_date": "2018-03-01T10:00:00Z", "content": "c"}]}`))
		req.NoError(err)
		req.Equal(uuid.MustParse("5b1a0b7e-3c4d-4e5f-8a9b-0c1d2e3f4a5b"), toDiskMessage(fixture.Messages[0]).ID)
	})

	t.Run("should not duplicate messages when imported twice", func(t *testing.T) {
		req := require.New(t)
		db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
		req.NoError(err)
		defer db.Close()

		streams := repositories.NewStreamRepository(db)
		users := repositories.NewUserRepository(db)
		messages := repositories.NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))

		fixture, err := Load(strings.NewReader(sample))
		req.NoError(err)
		for range 2 {
			_, err = Import(fixture, streams, users, messages)
			req.NoError(err)
		}

		stored, err := messages.GetTopicMessages(1, "lunch")
		req.NoError(err)
		req.Len(stored, 2)
	})

	t.Run("should stop at the first failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		streams := mocks.NewMockIStreamRepository(ctrl)
		users := mocks.NewMockIUserRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)

		streams.EXPECT().StoreStream(gomock.Any()).Return(fmt.Errorf("disk full"))
		users.EXPECT().StoreUser(gomock.Any()).Times(0)
		messages.EXPECT().StoreMessage(gomock.Any()).Times(0)

		_, err := Import(Fixture{Streams: []Stream{{ID: 1, Name: "general"}}}, streams, users, messages)
		require.ErrorContains(t, err, "disk full")
	})
}

func TestRenderPlain(t *testing.T) {
	require.Equal(t, "<p>a &lt;b&gt;<br>\nc</p>", RenderPlain("a <b>\nc"))
	require.True(t, rendering.IsStatusMessage("/me waves", RenderPlain("/me waves")))
}
