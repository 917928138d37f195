package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FamilyMember is the wire form of a family record.
type FamilyMember struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FatherName string    `json:"fatherName"`
	MotherName string    `json:"motherName"`
	FamilyName string    `json:"familyName"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FamilyMemberInput is the payload for create and update.
type FamilyMemberInput struct {
	Username   string `json:"username"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	FamilyName string `json:"familyName"`
	Date       string `json:"date"`
}

// Pagination describes list paging.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// FamilyPage is one page of family members.
type FamilyPage struct {
	Count      int            `json:"count"`
	Pagination Pagination     `json:"pagination"`
	Data       []FamilyMember `json:"data"`
}

// FamilyList fetches one page of family members.
func (c *Client) FamilyList(ctx context.Context, page, limit int) (*FamilyPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/v1/family"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out FamilyPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FamilyGet fetches a single family member.
func (c *Client) FamilyGet(ctx context.Context, id string) (*FamilyMember, error) {
	var out struct {
		Data FamilyMember `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/family/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// FamilyCreate persists a new family member.
func (c *Client) FamilyCreate(ctx context.Context, input FamilyMemberInput) (*FamilyMember, error) {
	var out struct {
		Data FamilyMember `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/family", input, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// FamilyUpdate overwrites an existing family member.
func (c *Client) FamilyUpdate(ctx context.Context, id string, input FamilyMemberInput) (*FamilyMember, error) {
	var out struct {
		Data FamilyMember `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/family/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// FamilyDelete removes a family member.
func (c *Client) FamilyDelete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/family/"+url.PathEscape(id), nil, nil)
}
