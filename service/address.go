package service

import (
	"strings"

	"themisai-backend/models"
)

// BuildAddress derives the geocoding query from a profile: "line1, city" or city alone
func BuildAddress(person *models.Person) (string, error) {
	if person == nil {
		return "", ErrProfileMissing
	}
	if person.Address == nil {
		return "", ErrAddressMissing
	}

	city := trimmed(person.Address.City)
	if city == "" {
		return "", ErrAddressIncomplete
	}

	line1 := trimmed(person.Address.Line1)
	if line1 == "" {
		return city, nil
	}
	return line1 + ", " + city, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
