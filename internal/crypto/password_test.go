package crypto

import "testing"

func TestHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher()
	digest, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if string(digest) == "correct horse battery" {
		t.Fatal("digest must not equal plaintext")
	}
	if err := hasher.Verify(digest, "correct horse battery"); err != nil {
		t.Fatalf("Verify rejected matching password: %v", err)
	}
	if err := hasher.Verify(digest, "wrong"); err == nil {
		t.Fatal("Verify accepted wrong password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher()
	first, err := hasher.Hash("same input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("same input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatal("bcrypt digests for the same input should differ")
	}
}
