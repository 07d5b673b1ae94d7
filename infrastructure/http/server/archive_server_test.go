package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"topic-archive/domain"
	"topic-archive/errors"
	"topic-archive/mocks"
	"topic-archive/services"
	"topic-archive/templates"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var public = domain.Stream{ID: 10, Name: "general", IsWebPublic: true}

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockIStreamRepository, *mocks.MockIMessageRepository) {
	ctrl := gomock.NewController(t)
	streams := mocks.NewMockIStreamRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	archiveService := services.NewArchiveService(streams, messages, renderer, log)
	return NewRouter(log, NewArchiveServer(log, archiveService)), streams, messages
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestArchiveServer_GetArchive(t *testing.T) {
	t.Run("should render the messages of a public topic", func(t *testing.T) {
		req := require.New(t)
		router, streams, messages := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(10)).Return(public, nil)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), "lunch").Return([]domain.Message{{
			ID:              uuid.New(),
			StreamID:        10,
			Topic:           "lunch",
			Sender:          domain.User{ID: 1, FullName: "Iago", Email: "iago@zulip.com"},
			PubDate:         time.Date(2018, 3, 1, 10, 0, 0, 0, time.UTC),
			Content:         "pizza?",
			RenderedContent: "<p>pizza?</p>",
		}}, nil)

		rec := get(router, "/archive/streams/10/topics/lunch")
		req.Equal(http.StatusOK, rec.Code)
		req.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		req.Contains(body, "<p>pizza?</p>")
		req.Contains(body, "Iago")
		req.Contains(body, "#general")
		req.Contains(body, `datetime="2018-03-01T10:00:00Z"`)
	})

	t.Run("should decode escaped topic names", func(t *testing.T) {
		router, streams, messages := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(10)).Return(public, nil).Times(3)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), "lunch time").Return(nil, nil)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), "a/b").Return(nil, nil)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), "100%").Return(nil, nil)

		require.Equal(t, http.StatusOK, get(router, "/archive/streams/10/topics/lunch%20time").Code)
		require.Equal(t, http.StatusOK, get(router, "/archive/streams/10/topics/a%2Fb").Code)
		require.Equal(t, http.StatusOK, get(router, "/archive/streams/10/topics/100%25").Code)
	})

	t.Run("should answer 404 for an unknown stream", func(t *testing.T) {
		router, streams, _ := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(99)).Return(domain.Stream{}, errors.ErrStreamNotFound)

		require.Equal(t, http.StatusNotFound, get(router, "/archive/streams/99/topics/lunch").Code)
	})

	t.Run("should render a private stream without messages", func(t *testing.T) {
		req := require.New(t)
		router, streams, messages := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(10)).
			Return(domain.Stream{ID: 10, Name: "core team", IsWebPublic: false}, nil)
		messages.EXPECT().GetTopicMessages(gomock.Any(), gomock.Any()).Times(0)

		rec := get(router, "/archive/streams/10/topics/lunch")
		req.Equal(http.StatusOK, rec.Code)
		req.Contains(rec.Body.String(), "archive-restricted")
		req.NotContains(rec.Body.String(), `class="message_row`)
	})

	t.Run("should answer 500 when storage fails", func(t *testing.T) {
		router, streams, messages := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(10)).Return(public, nil)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), "lunch").Return(nil, fmt.Errorf("boom"))

		require.Equal(t, http.StatusInternalServerError, get(router, "/archive/streams/10/topics/lunch").Code)
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		router, streams, _ := newTestRouter(t)
		streams.EXPECT().GetStreamByID(gomock.Any()).Times(0)

		for _, path := range []string{
			"/archive/streams/abc/topics/lunch",
			"/archive/streams/-3/topics/lunch",
			"/archive/streams/10/topics/" + strings.Repeat("x", 61),
		} {
			require.Equal(t, http.StatusBadRequest, get(router, path).Code, path)
		}
	})

	t.Run("should answer 404 for stream zero", func(t *testing.T) {
		router, streams, messages := newTestRouter(t)
		streams.EXPECT().GetStreamByID(domain.StreamID(0)).Return(domain.Stream{}, errors.ErrStreamNotFound)
		messages.EXPECT().GetTopicMessages(gomock.Any(), gomock.Any()).Times(0)

		require.Equal(t, http.StatusNotFound, get(router, "/archive/streams/0/topics/lunch").Code)
	})

	t.Run("should accept the longest topic name", func(t *testing.T) {
		router, streams, messages := newTestRouter(t)
		topic := strings.Repeat("é", 60)
		streams.EXPECT().GetStreamByID(domain.StreamID(10)).Return(public, nil)
		messages.EXPECT().GetTopicMessages(domain.StreamID(10), topic).Return(nil, nil)

		require.Equal(t, http.StatusOK, get(router, "/archive/streams/10/topics/"+url.PathEscape(topic)).Code)
	})
}

func TestArchiveServer_Health(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rec := get(router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
