package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "player not found",
			expected: "NOT_FOUND: player not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "game has ended",
			expected: "FAILED_PRECONDITION: game has ended",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("player not found").
		WithMeta("game_id", "game_1").
		WithMeta("player_id", "p1")

	s.Equal("game_1", err.Meta["game_id"])
	s.Equal("p1", err.Meta["player_id"])

	err2 := errors.Internal("store failure").
		WithMetaMap(map[string]interface{}{
			"turn":     3,
			"location": "basement",
		})

	s.Equal(3, err2.Meta["turn"])
	s.Equal("basement", err2.Meta["location"])
}

func (s *ErrorsTestSuite) TestWrap() {
	s.Run("plain error becomes internal", func() {
		baseErr := fmt.Errorf("disk I/O error")
		wrapped := errors.Wrap(baseErr, "failed to update player")

		s.Equal(errors.CodeInternal, wrapped.Code)
		s.Equal("failed to update player", wrapped.Message)
		s.Equal(baseErr, wrapped.Unwrap())
	})

	s.Run("coded error keeps its code", func() {
		baseErr := errors.NotFound("row not found")
		wrapped := errors.Wrap(baseErr, "player not found")

		s.Equal(errors.CodeNotFound, wrapped.Code)
		s.Equal(baseErr, wrapped.Unwrap())
	})

	s.Run("nil stays nil", func() {
		s.Nil(errors.Wrap(nil, "should be nil"))
		s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
	})
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "oracle unreachable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("oracle unreachable", wrapped.Message)
	s.True(errors.IsUnavailable(wrapped))
}

func (s *ErrorsTestSuite) TestFromContext() {
	testCases := []struct {
		name string
		err  error
		code errors.Code
	}{
		{"deadline", context.DeadlineExceeded, errors.CodeDeadlineExceeded},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), errors.CodeDeadlineExceeded},
		{"canceled", context.Canceled, errors.CodeCanceled},
		{"other", fmt.Errorf("status 500"), errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.FromContext(tc.err, "oracle call failed")
			s.Equal(tc.code, err.Code)
			s.True(err.Code.Transient())
		})
	}

	s.Nil(errors.FromContext(nil, "unused"))
}

func (s *ErrorsTestSuite) TestTransient() {
	s.False(errors.CodeNotFound.Transient())
	s.False(errors.CodeInvalidArgument.Transient())
	s.True(errors.CodeUnavailable.Transient())
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.True(errors.IsNotFound(notFoundErr))
	s.True(errors.IsNotFound(wrappedErr))
	s.False(errors.IsNotFound(invalidErr))
	s.True(errors.IsInvalidArgument(invalidErr))
	s.True(errors.IsFailedPrecondition(errors.FailedPrecondition("ended")))
	s.True(errors.IsDeadlineExceeded(errors.DeadlineExceeded("slow")))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFound("player missing").WithMeta("player_id", "p1")
	wrapped := errors.Wrap(err, "failed to resolve action")
	stdErr := fmt.Errorf("standard error")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(stdErr))
	s.Equal(errors.CodeOK, errors.GetCode(nil))

	s.Equal("p1", errors.GetMeta(wrapped)["player_id"])
	s.Nil(errors.GetMeta(stdErr))

	s.Equal("failed to resolve action", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(stdErr))
}
