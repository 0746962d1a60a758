package pkg

import "golang.org/x/crypto/bcrypt"

const DefaultTokenHashCost = 12

// HashToken produces the bcrypt hash stored in GYMDEMOS_ADMIN_TOKEN_HASH.
func HashToken(token string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultTokenHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	return BytesToString(bytes), err
}

func CheckTokenHash(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
