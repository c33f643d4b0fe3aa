package prunedoc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvaldes/prunedoc"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := prunedoc.Errorf(prunedoc.ENOTFOUND, "title %q not found", "ANNEX 3")

	assert.Equal(t, prunedoc.ENOTFOUND, prunedoc.ErrorCode(err))
	assert.Equal(t, "title \"ANNEX 3\" not found", prunedoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, prunedoc.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, prunedoc.EINTERNAL, prunedoc.ErrorCode(errors.New("disk failure")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, prunedoc.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", prunedoc.ErrorMessage(errors.New("disk failure")))
}
