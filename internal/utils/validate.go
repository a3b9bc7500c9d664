package utils

import "regexp"

// Input validation rules shared by the user, room and message handlers.
// Limits match the column sizes in the schema.

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// IsValidEmail checks basic email format.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidUsername checks 3-20 characters, alphanumeric and underscore only.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	return usernameRe.MatchString(username)
}

// IsValidPassword checks at least 8 characters containing a letter and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsValidRoomName checks 1-100 characters.
func IsValidRoomName(name string) bool {
	return name != "" && len(name) <= 100
}

// IsValidRoomDescription checks at most 500 characters.
func IsValidRoomDescription(description string) bool {
	return len(description) <= 500
}

// IsValidMessageContent checks 1-1000 characters.
func IsValidMessageContent(content string) bool {
	return content != "" && len(content) <= 1000
}

// IsValidMessageType accepts the three supported message kinds.
func IsValidMessageType(t string) bool {
	return t == "text" || t == "image" || t == "file"
}
