package constants

import (
	"strings"
)

// UserType classifies an onboarded profile.
type UserType string

// Stable values (store these exact strings in DB).
const (
	UserTypeCreator  UserType = "Creator"
	UserTypeMentor   UserType = "Mentor"
	UserTypeInvestor UserType = "Investor"
)

var allUserTypes = []UserType{
	UserTypeCreator,
	UserTypeMentor,
	UserTypeInvestor,
}

// ParseUserType matches case-insensitively and tolerates the legacy
// "Collaborator" label, which maps to Creator.
func ParseUserType(s string) (UserType, bool) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, "Collaborator") {
		return UserTypeCreator, true
	}
	for _, t := range allUserTypes {
		if strings.EqualFold(v, string(t)) {
			return t, true
		}
	}
	return "", false
}

// EmploymentType is the work arrangement a profile is open to.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-Time"
	EmploymentPartTime EmploymentType = "Part-Time"
	EmploymentContract EmploymentType = "Contract"
)

var allEmploymentTypes = []EmploymentType{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
}

// ParseEmploymentType matches case-insensitively, with or without the hyphen.
func ParseEmploymentType(s string) (EmploymentType, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
	for _, t := range allEmploymentTypes {
		if strings.EqualFold(v, string(t)) {
			return t, true
		}
	}
	return "", false
}
