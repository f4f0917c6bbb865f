package pexels

import "errors"

var (
	ErrUnauthorized    = errors.New("pexels: invalid or missing API key")
	ErrRateLimited     = errors.New("pexels: rate limited")
	ErrUnavailable     = errors.New("pexels: service unavailable")
	ErrInvalidResponse = errors.New("pexels: invalid response")
)
