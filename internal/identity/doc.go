// Package identity talks to the external identity provider.
//
// Client fetches user profiles from the provider's backend API. Session
// tokens issued by the provider are decoded by an OIDCDecoder, which checks
// them against the provider's published signing keys. HMACDecoder accepts
// locally signed HS256 tokens and is meant for development only.
package identity
