package hash

import "testing"

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if h == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Check(h, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if Check(h, "hunter23") {
		t.Fatal("wrong password accepted")
	}
	if Check("not-a-bcrypt-hash", "hunter22") {
		t.Fatal("garbage hash accepted")
	}
}
