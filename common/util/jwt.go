package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/common"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrAuthMissing = errors.New("authorization header is missing or malformed")
	ErrAuthInvalid = errors.New("authorization token is invalid")
)

func jwtSecret() ([]byte, error) {
	if common.Config == nil || common.Config.JWTSecret == nil || *common.Config.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return []byte(*common.Config.JWTSecret), nil
}

func GenerateAuthToken(id string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	expirationTime := time.Now().Add(time.Hour * 24 * 2) // 2 days

	claims := &shared.UserClaims{
		UserId: &id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

func DecodeAuthToken(tokenString string) (*shared.UserClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	claims := new(shared.UserClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}

// VerifyAuthToken checks an Authorization header of the form "Bearer <token>" and
// returns the user id it carries.
func VerifyAuthToken(header string) (string, error) {
	tokenParts := strings.Split(header, " ")
	if header == "" || len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", ErrAuthMissing
	}

	claims, err := DecodeAuthToken(tokenParts[1])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthInvalid, err)
	}
	if claims.UserId == nil || *claims.UserId == "" {
		return "", fmt.Errorf("%w: token has no user id", ErrAuthInvalid)
	}

	return *claims.UserId, nil
}
