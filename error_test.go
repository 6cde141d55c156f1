package taxdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := taxdoc.Errorf(taxdoc.ENOTFOUND, "document %q not found", "조심-2023-중-7590")

	assert.Equal(t, taxdoc.ENOTFOUND, taxdoc.ErrorCode(err))
	assert.Equal(t, "document \"조심-2023-중-7590\" not found", taxdoc.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("convert: %w", taxdoc.Errorf(taxdoc.EINVALID, "empty markup"))

	assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	assert.Equal(t, "empty markup", taxdoc.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, taxdoc.EINTERNAL, taxdoc.ErrorCode(err))
	assert.Equal(t, "Internal error", taxdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, taxdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, taxdoc.ErrorMessage(nil))
}
