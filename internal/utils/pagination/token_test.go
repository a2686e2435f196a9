package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarjima/translation_center_app/internal/utils/pagination"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	processedAt := time.Date(2025, 6, 12, 9, 30, 45, 123456789, time.UTC)
	id := "9f0c2a1e-1111-2222-3333-444455556666"

	token := pagination.EncodeToken(processedAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, processedAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := "bm8tc2VwYXJhdG9yLWhlcmU=" // base64("no-separator-here")
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
