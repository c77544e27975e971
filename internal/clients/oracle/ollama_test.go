package oracle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/clients/oracle"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

type OllamaProviderTestSuite struct {
	suite.Suite
	server   *httptest.Server
	handler  http.HandlerFunc
	provider *oracle.OllamaProvider
}

func TestOllamaProviderSuite(t *testing.T) {
	suite.Run(t, new(OllamaProviderTestSuite))
}

func (s *OllamaProviderTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))

	var err error
	s.provider, err = oracle.NewOllamaProvider(&oracle.OllamaConfig{
		BaseURL: s.server.URL + "/",
		Model:   "qwen2.5:3b",
	})
	s.Require().NoError(err)
}

func (s *OllamaProviderTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OllamaProviderTestSuite) TestComplete() {
	s.Run("posts a non-streaming chat", func() {
		var got map[string]any
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("/api/chat", r.URL.Path)
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"The lights die."}}`))
		}

		reply, err := s.provider.Complete(context.Background(), &oracle.Request{
			System:   "You narrate.",
			Messages: []oracle.Message{{Role: "user", Content: "look around"}},
			JSON:     true,
		})
		s.Require().NoError(err)
		s.Equal("The lights die.", reply)

		s.Equal("qwen2.5:3b", got["model"])
		s.Equal(false, got["stream"])
		s.Equal("json", got["format"])
		messages := got["messages"].([]any)
		s.Len(messages, 2)
		s.Equal("system", messages[0].(map[string]any)["role"])
	})

	s.Run("error status is unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}

		_, err := s.provider.Complete(context.Background(), &oracle.Request{
			Messages: []oracle.Message{{Role: "user", Content: "hello"}},
		})
		s.Require().Error(err)
		s.True(errors.IsUnavailable(err))
	})

	s.Run("garbage body is unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}

		_, err := s.provider.Complete(context.Background(), &oracle.Request{
			Messages: []oracle.Message{{Role: "user", Content: "hello"}},
		})
		s.True(errors.IsUnavailable(err))
	})

	s.Run("context deadline is reported", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := s.provider.Complete(ctx, &oracle.Request{
			Messages: []oracle.Message{{Role: "user", Content: "hello"}},
		})
		s.True(errors.IsDeadlineExceeded(err))
	})
}

func (s *OllamaProviderTestSuite) TestConfigValidation() {
	_, err := oracle.NewOllamaProvider(&oracle.OllamaConfig{BaseURL: "http://localhost:11434"})
	s.True(errors.IsInvalidArgument(err))

	_, err = oracle.NewOllamaProvider(nil)
	s.True(errors.IsInvalidArgument(err))
}
