// Package common contains shared constants and sentinel errors used across
// PetSwap server and client components.
package common

const (
	// HeaderAuthorization carries the bearer token on protected requests.
	HeaderAuthorization = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// TokenMetadataKey is the local storage key of the persisted token.
	TokenMetadataKey = "token"

	// DevSecretKey is the signing secret used when none is configured.
	// It is only accepted in development mode.
	DevSecretKey = "dev-secret-change-in-production"
)
