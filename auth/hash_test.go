package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashCredentials(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		// Precomputed sha256(password + email) hex digests.
		assert.Equal(t,
			"4351280a49b51e2a27f65c9349746d6b66715f20a2597929fe12b846bf02b7f8",
			HashCredentials("secret1", "a@x.com"))
		assert.Equal(t,
			"8b70a0322c3577331b3d4f668ecf8f025edfb70b8f37c15b554a574274374f6e",
			HashCredentials("hunter2", "alice@example.com"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := HashCredentials("password", "user@example.com")
		b := HashCredentials("password", "user@example.com")
		assert.Equal(t, a, b)
	})

	t.Run("lowercase hex of fixed length", func(t *testing.T) {
		digest := HashCredentials("anything", "any@example.com")
		assert.Len(t, digest, 64)
		for _, c := range digest {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
				"unexpected character %q in digest", c)
		}
	})

	t.Run("email participates in the digest", func(t *testing.T) {
		// Same password with different emails must not collide.
		assert.NotEqual(t,
			HashCredentials("password", "a@example.com"),
			HashCredentials("password", "b@example.com"))
	})

	t.Run("concatenation boundary matters", func(t *testing.T) {
		// "ab"+"c@x.com" and "a"+"bc@x.com" concatenate to the same bytes,
		// so the scheme cannot distinguish them.
		assert.Equal(t,
			HashCredentials("ab", "c@x.com"),
			HashCredentials("a", "bc@x.com"))
	})
}
