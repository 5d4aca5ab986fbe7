// Package models holds the UI-facing entities of the campus marketplace
// client and the pure mappings from backend records to them. Everything here
// is free of I/O so the reshaping rules stay unit-testable on their own.
package models

import (
	"fmt"
	"strings"
	"time"
)

// UserRecord mirrors the wire shape of a backend user.
type UserRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StudentID   string  `json:"student_id"`
	Email       string  `json:"email"`
	Avatar      string  `json:"avatar"`
	CreditScore int     `json:"credit_score"`
	Balance     float64 `json:"balance"`
}

// User is the locally cached view of a backend user record.
type User struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StudentID   string  `json:"studentId"`
	Email       string  `json:"email"`
	Avatar      string  `json:"avatar"`
	CreditScore int     `json:"creditScore"`
	Balance     float64 `json:"balance"`
}

// UserFromRecord adopts a backend user verbatim except for avatar-URL
// normalization.
func UserFromRecord(rec UserRecord, baseURL string, now time.Time) User {
	return User{
		ID:          rec.ID,
		Name:        rec.Name,
		StudentID:   rec.StudentID,
		Email:       rec.Email,
		Avatar:      NormalizeAvatarURL(rec.Avatar, baseURL, now),
		CreditScore: rec.CreditScore,
		Balance:     rec.Balance,
	}
}

// NormalizeAvatarURL makes a backend avatar path renderable: relative
// /media paths get the base URL prepended, plus a cache-busting timestamp
// query so a re-uploaded avatar is not hidden by the image cache.
// Absolute URLs and empty values pass through unchanged.
func NormalizeAvatarURL(raw, baseURL string, now time.Time) string {
	if !strings.HasPrefix(raw, "/media") {
		return raw
	}
	return fmt.Sprintf("%s%s?t=%d", strings.TrimRight(baseURL, "/"), raw, now.UnixMilli())
}
