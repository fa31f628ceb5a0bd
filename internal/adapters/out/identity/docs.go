// Package identity authenticates principals: bcrypt password hashes, HS256
// bearer tokens and a short-lived cache of resolved principals.
package identity
