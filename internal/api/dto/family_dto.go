package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/family-service/internal/domain"
	"github.com/spec-kit/family-service/internal/validation"
)

// FamilyMemberRequest payload for create and update.
type FamilyMemberRequest struct {
	Username   string `json:"username" validate:"required,max=50"`
	FatherName string `json:"fatherName" validate:"required,max=50"`
	MotherName string `json:"motherName" validate:"required,max=50"`
	FamilyName string `json:"familyName" validate:"required,max=50"`
	Date       string `json:"date" validate:"required"`
}

var familyMessages = map[string]string{
	"Username":   "Username is required and must be a non-empty string",
	"FatherName": "Father name is required and must be a non-empty string",
	"MotherName": "Mother name is required and must be a non-empty string",
	"FamilyName": "Family name is required and must be a non-empty string",
	"Date":       "Date is required and must be a valid date",
}

const dateMessage = "Date is required and must be a valid date"

// Validate trims inputs and collects one message per violated field. On
// success it returns the parsed date.
func (r *FamilyMemberRequest) Validate(v *validation.Validator) (time.Time, []string) {
	r.Username = strings.TrimSpace(r.Username)
	r.FatherName = strings.TrimSpace(r.FatherName)
	r.MotherName = strings.TrimSpace(r.MotherName)
	r.FamilyName = strings.TrimSpace(r.FamilyName)
	r.Date = strings.TrimSpace(r.Date)

	msgs := v.Messages(*r, familyMessages)

	var date time.Time
	if r.Date != "" {
		parsed, err := parseDate(r.Date)
		if err != nil {
			msgs = append(msgs, dateMessage)
		} else {
			date = parsed
		}
	}
	return date, msgs
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// FamilyMemberResponse is the wire form of a family record.
type FamilyMemberResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FatherName string    `json:"fatherName"`
	MotherName string    `json:"motherName"`
	FamilyName string    `json:"familyName"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewFamilyMemberResponse maps a domain record to its wire form.
func NewFamilyMemberResponse(m *domain.FamilyMember) FamilyMemberResponse {
	return FamilyMemberResponse{
		ID:         m.ID,
		Username:   m.Username,
		FatherName: m.FatherName,
		MotherName: m.MotherName,
		FamilyName: m.FamilyName,
		Date:       m.Date,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// Pagination describes list paging in responses.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}
