package domain

import (
	"crypto/md5"
	"encoding/hex"
)

// Email is a contributor identity.
type Email struct {
	Email   string `json:"email"`
	HashMD5 string `json:"hash_md5"`
}

// HashEmail returns the hex MD5 digest of address, used as a stable
// de-identified contributor key.
func HashEmail(address string) string {
	sum := md5.Sum([]byte(address))
	return hex.EncodeToString(sum[:])
}

func NewEmail(address string) Email {
	return Email{Email: address, HashMD5: HashEmail(address)}
}
