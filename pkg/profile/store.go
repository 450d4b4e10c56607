// Package profile is the local key-value store that remembers customer
// identity fields across sessions. It replaces the implicit device-local
// storage of the original flow with an explicit injected service.
//
// Reads never fail: an absent key yields the empty string and callers
// degrade to empty form defaults. Writes are last-write-wins.
package profile

const (
	KeyFullName     = "userName"
	KeyEmail        = "userEmail"
	KeyAddress      = "userAddress"
	KeyBusinessName = "userBusinessName"
	KeyAuthToken    = "token"
)

type Store interface {
	Get(key string) string
	Set(key, value string)
}
