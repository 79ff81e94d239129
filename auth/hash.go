package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashCredentials derives the stored password digest: the lowercase hex
// encoding of SHA-256(password || email). Deterministic and pure, so login
// can compare digests directly.
//
// Using the email as the salt is an inherited weakness: it gives no
// protection beyond a generic salted hash, and it ties the digest to the
// email, which is why this system does not support email changes. A password
// set while an account holds a given email only verifies against that email.
func HashCredentials(password, email string) string {
	sum := sha256.Sum256([]byte(password + email))
	return hex.EncodeToString(sum[:])
}
