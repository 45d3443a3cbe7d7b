package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorTokenRoundTrip(t *testing.T) {
	signer := NewSigner("secret")

	token, err := signer.SignActor(42, "soc", time.Hour)
	require.NoError(t, err)

	claims, err := signer.ParseActor(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "soc", claims.Role)
}

func TestReviewTokenRoundTrip(t *testing.T) {
	signer := NewSigner("secret")

	token, err := signer.SignReview(5, 77, "pat")
	require.NoError(t, err)

	claims, err := signer.ParseReview(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.SocietyID)
	assert.Equal(t, uint(77), claims.SubmissionID)
	assert.Equal(t, "pat", claims.Role)
}

func TestUploadTokenRoundTrip(t *testing.T) {
	signer := NewSigner("secret")

	token, err := signer.SignUpload(9)
	require.NoError(t, err)

	claims, err := signer.ParseUpload(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.FileID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewSigner("secret-a").SignUpload(9)
	require.NoError(t, err)

	_, err = NewSigner("secret-b").ParseUpload(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewSigner("secret").ParseActor("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
