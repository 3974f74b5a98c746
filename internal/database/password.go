package database

import "crypto/subtle"

// passwordMatches сравнивает пароли точно (с учетом регистра) за постоянное время.
func passwordMatches(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
