package firestore

import (
	"testing"

	"storefront/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubWriteJob struct {
	err error
}

func (j stubWriteJob) Results() (*firestore.WriteResult, error) {
	return nil, j.err
}

func TestFirstWriteError(t *testing.T) {
	assert.NoError(t, firstWriteError(nil))
	assert.NoError(t, firstWriteError([]bulkWriteJob{stubWriteJob{}, stubWriteJob{}}))

	writeErr := status.Error(codes.Unavailable, "RST_STREAM")
	err := firstWriteError([]bulkWriteJob{
		stubWriteJob{},
		stubWriteJob{err: writeErr},
		stubWriteJob{err: errors.New("later failure")},
	})
	require.Error(t, err)
	assert.Equal(t, writeErr, err)
}

func TestFirstWriteError_MapsToStoreUnavailable(t *testing.T) {
	// A delete that fails after the flush must surface as the port sentinel,
	// the same way a failed transaction would.
	jobs := []bulkWriteJob{stubWriteJob{err: status.Error(codes.Unavailable, "backend unavailable")}}

	err := mapFirestoreError(firstWriteError(jobs))

	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestMapFirestoreError(t *testing.T) {
	for _, code := range []codes.Code{codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted} {
		err := mapFirestoreError(status.Error(code, code.String()))
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable, code.String())
	}

	plain := errors.New("decode failed")
	assert.Equal(t, plain, mapFirestoreError(plain))

	notFound := status.Error(codes.NotFound, "missing document")
	assert.Equal(t, notFound, mapFirestoreError(notFound))
}
