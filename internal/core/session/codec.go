package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// Codec converts a User to and from its durable slot representation.
// Decode must reject anything that does not yield a valid User.
type Codec interface {
	Encode(user *domain.User) ([]byte, error)
	Decode(raw []byte) (*domain.User, error)
}

// JSONCodec stores the user as a plain JSON object.
type JSONCodec struct{}

func (JSONCodec) Encode(user *domain.User) ([]byte, error) {
	return json.Marshal(user)
}

func (JSONCodec) Decode(raw []byte) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &u, nil
}

// JWTCodec stores the user as an HS256-signed token so that a slot edited
// outside the application decodes as absent.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

type userClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

func (c *JWTCodec) Encode(user *domain.User) ([]byte, error) {
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		Name:             user.Name,
		Role:             string(user.Role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return []byte(signed), nil
}

func (c *JWTCodec) Decode(raw []byte) (*domain.User, error) {
	claims := &userClaims{}
	tkn, err := jwt.ParseWithClaims(string(raw), claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !tkn.Valid {
		return nil, errors.New("decode session: invalid token")
	}

	u := &domain.User{ID: claims.Subject, Name: claims.Name, Role: domain.Role(claims.Role)}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return u, nil
}
