package idtoken

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidToken     = errors.New("invalid id_token")
	ErrInvalidSignature = errors.New("invalid id_token signature")
	ErrInvalidAudience  = errors.New("invalid id_token audience")
	ErrExpiredToken     = errors.New("id_token is expired")
	ErrMissingSubject   = errors.New("id_token has no subject")
)
