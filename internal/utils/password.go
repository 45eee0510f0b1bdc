package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of an account password. The cost
// comes from BCRYPT_COST; a value outside bcrypt's supported range
// falls back to the library default instead of failing registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored hash against a login attempt in
// constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
