package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeforge/pkg/models"
)

func TestFileBlockSendsPDFAsDocument(t *testing.T) {
	block := fileBlock(&models.ImageData{MimeType: "application/pdf", Data: "aGVsbG8="})

	require.NotNil(t, block.OfDocument)
	assert.Nil(t, block.OfImage)
	require.NotNil(t, block.OfDocument.Source.OfBase64)
	assert.Equal(t, "aGVsbG8=", block.OfDocument.Source.OfBase64.Data)
}

func TestFileBlockSendsImagesAsImageBlocks(t *testing.T) {
	block := fileBlock(&models.ImageData{MimeType: "image/png", Data: "aW1n"})

	require.NotNil(t, block.OfImage)
	assert.Nil(t, block.OfDocument)
}
