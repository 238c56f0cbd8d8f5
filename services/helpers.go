package services

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// restrictedStates lists the Indian states where real-money fantasy play
// is prohibited. Matching is exact on the submitted state name.
var restrictedStates = map[string]bool{
	"Andhra Pradesh": true,
	"Assam":          true,
	"Nagaland":       true,
	"Odisha":         true,
	"Sikkim":         true,
	"Telangana":      true,
}

// ageAt computes full years between birth and now, decrementing when the
// birthday has not yet occurred this year.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
