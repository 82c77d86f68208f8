package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
)

func TestNewUpload(t *testing.T) {
	t.Parallel()

	u, err := NewUpload("HRPM-001", "fir_scan.pdf", "application/pdf", 1024, "analyst-1")
	require.NoError(t, err)
	assert.Equal(t, "HRPM-001/"+string(u.ID)+"/fir_scan.pdf", u.ObjectKey)

	_, err = NewUpload("", "fir_scan.pdf", "application/pdf", 1024, "")
	assert.Error(t, err)

	_, err = NewUpload("HRPM-001", "  ", "application/pdf", 1024, "")
	assert.Error(t, err)

	_, err = NewUpload("HRPM-001", "fir_scan.pdf", "application/pdf", 0, "")
	assert.Equal(t, apperrors.ErrCodeDocumentTooLarge, apperrors.GetCode(err))
}

func TestNewExtractedEvent(t *testing.T) {
	t.Parallel()

	uploadID := common.NewID()

	e, err := NewExtractedEvent("HRPM-001", uploadID, "FIR registered", 0.87)
	require.NoError(t, err)
	assert.Equal(t, 0.87, e.Confidence)

	_, err = NewExtractedEvent("HRPM-001", uploadID, " ", 0.5)
	assert.Equal(t, apperrors.ErrCodeExtractionBadPayload, apperrors.GetCode(err))

	_, err = NewExtractedEvent("HRPM-001", "bad", "FIR registered", 0.5)
	assert.Error(t, err)

	// Confidence clamps to [0, 1].
	e, err = NewExtractedEvent("HRPM-001", uploadID, "event", 3.2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Confidence)
	e, err = NewExtractedEvent("HRPM-001", uploadID, "event", -1)
	require.NoError(t, err)
	assert.Zero(t, e.Confidence)
}
