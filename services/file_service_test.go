package services

import (
	"context"
	"strings"
	"testing"

	"ccaportal/pkg/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUpload(t *testing.T) {
	repo := newFakeFileRepo()
	signer := tokens.NewSigner("file-test-secret")
	service := &FileService{repo: repo, signer: signer}

	result, err := service.RegisterUpload(context.Background(), 5, "Budget Plan.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Name, ".pdf"), "canonical name keeps a lowercased extension")
	assert.NotContains(t, result.Name, "Budget", "canonical name is collision-free, not the original")

	claims, err := signer.ParseUpload(result.Token)
	require.NoError(t, err)
	stored, err := repo.FindByID(context.Background(), claims.FileID)
	require.NoError(t, err)
	assert.Equal(t, result.Name, stored.Name)
	assert.Equal(t, "Budget Plan.PDF", stored.OriginalName)
	assert.Equal(t, uint(5), stored.UploaderID)
	assert.False(t, stored.Saved)
}

func TestRegisterUpload_NoExtension(t *testing.T) {
	service := &FileService{repo: newFakeFileRepo(), signer: tokens.NewSigner("file-test-secret")}

	_, err := service.RegisterUpload(context.Background(), 5, "README")
	assertValidationError(t, err)
}
