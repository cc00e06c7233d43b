// Package common contains shared constants and sentinel errors used across
// gophmessenger components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound and outbound requests.
const AccessTokenHeaderName = "access_token"

// InvalidCredentialsMessage is the only text a caller ever sees for a failed
// login, whichever half of the credential pair was wrong.
const InvalidCredentialsMessage = "invalid username/password"
