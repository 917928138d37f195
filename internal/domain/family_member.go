package domain

import "time"

// FamilyMember is the aggregate for family records.
type FamilyMember struct {
	ID         string
	Username   string
	FatherName string
	MotherName string
	FamilyName string
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
