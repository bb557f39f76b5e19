package core

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	const plain = "Password@123"

	hash, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == plain {
		t.Fatal("hash equals plaintext")
	}

	ok, err := VerifyPassword(plain, hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("password did not verify against its own hash")
	}

	ok, err = VerifyPassword("Password@124", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error on mismatch: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

// Each hash call salts independently, so two hashes of the same input differ
// while both verify.
func TestHashPasswordSalted(t *testing.T) {
	const plain = "Password@123"

	h1, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical")
	}
	for _, h := range []string{h1, h2} {
		ok, err := VerifyPassword(plain, h)
		if err != nil || !ok {
			t.Fatalf("verify failed for %q: ok=%v err=%v", h, ok, err)
		}
	}
}

// A malformed stored hash is an internal error, not a quiet mismatch.
func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("Password@123", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if ok {
		t.Fatal("malformed hash verified")
	}
}
