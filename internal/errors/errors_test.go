package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "invalid_token: empty token", New(InvalidToken, "empty token").Error())
	assert.Equal(t, "network_failure: request failed: EOF", Wrap(NetworkFailure, "request failed", io.EOF).Error())
}

func TestKindMatching(t *testing.T) {
	base := Wrap(AuthorizationExpired, "session expired", io.ErrUnexpectedEOF)
	wrapped := fmt.Errorf("list depots: %w", base)

	assert.True(t, IsKind(wrapped, AuthorizationExpired))
	assert.False(t, IsKind(wrapped, NetworkFailure))
	assert.Equal(t, AuthorizationExpired, KindOf(wrapped))
	assert.True(t, stderrors.Is(wrapped, io.ErrUnexpectedEOF), "cause must stay reachable")
	assert.True(t, stderrors.Is(wrapped, &E{Kind: AuthorizationExpired}))
	assert.False(t, stderrors.Is(wrapped, &E{Kind: HTTPFailure}))
	assert.Equal(t, Kind(""), KindOf(io.EOF))
}
