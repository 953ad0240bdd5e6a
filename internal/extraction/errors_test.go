package extraction_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tasksift/internal/extraction"
)

func TestFailureKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: dial tcp", extraction.ErrRemoteTransport), extraction.KindTransport},
		{fmt.Errorf("%w: empty candidates", extraction.ErrRemoteProtocol), extraction.KindProtocol},
		{extraction.ErrContentBlocked, extraction.KindContentBlocked},
		{fmt.Errorf("%w: bad json", extraction.ErrResponseParse), extraction.KindParse},
		{fmt.Errorf("%w: %w", extraction.ErrRemoteTransport, context.Canceled), extraction.KindCanceled},
		{context.DeadlineExceeded, extraction.KindTimeout},
		{errors.New("other"), extraction.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extraction.FailureKind(tt.err), "error %v", tt.err)
	}
}

func TestContentBlockedIsProtocolError(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, extraction.ErrContentBlocked, extraction.ErrRemoteProtocol)
}
