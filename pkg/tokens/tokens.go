package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// The service issues three token families, all HS256:
//   - actor tokens carried on every API request,
//   - review tokens embedded in the review links mailed to President/Patron,
//   - upload tokens handed out when a file's metadata is registered.

var ErrInvalidToken = errors.New("invalid or expired token")

// ActorClaims identify the authenticated account and its role.
type ActorClaims struct {
	AccountID uint   `json:"id"`
	Role      string `json:"type"`
	jwt.RegisteredClaims
}

// ReviewClaims bind a reviewer role to one submission of one society.
type ReviewClaims struct {
	SocietyID    uint   `json:"societyId"`
	SubmissionID uint   `json:"sub_id"`
	Role         string `json:"type"`
	jwt.RegisteredClaims
}

// UploadClaims reference a registered file record.
type UploadClaims struct {
	FileID uint `json:"fileId"`
	jwt.RegisteredClaims
}

// Signer signs and parses the service's JWTs with a shared secret.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) SignActor(accountID uint, role string, ttl time.Duration) (string, error) {
	claims := ActorClaims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseActor(tokenString string) (*ActorClaims, error) {
	claims := &ActorClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// SignReview creates the token placed in review links. Review links stay
// valid for a week, long enough for a slow reviewer.
func (s *Signer) SignReview(societyID, submissionID uint, role string) (string, error) {
	claims := ReviewClaims{
		SocietyID:    societyID,
		SubmissionID: submissionID,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseReview(tokenString string) (*ReviewClaims, error) {
	claims := &ReviewClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Signer) SignUpload(fileID uint) (string, error) {
	claims := UploadClaims{
		FileID: fileID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseUpload(tokenString string) (*UploadClaims, error) {
	claims := &UploadClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Signer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
