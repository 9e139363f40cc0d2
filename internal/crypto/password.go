package crypto

import "golang.org/x/crypto/bcrypt"

// Hasher turns passwords into digests and verifies them. Injected into the
// account service so the store only ever sees digests.
type Hasher interface {
	Hash(plain string) ([]byte, error)
	Verify(digest []byte, plain string) error
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher using the default bcrypt cost.
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a digest from plaintext.
func (h BcryptHasher) Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), h.cost)
}

// Verify compares plaintext against a stored digest.
func (h BcryptHasher) Verify(digest []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(digest, []byte(plain))
}
