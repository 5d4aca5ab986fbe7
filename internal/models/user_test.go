package models

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAvatarURL_MediaPathGetsBaseAndCacheBuster(t *testing.T) {
	now := time.UnixMilli(1756600000000)
	got := NormalizeAvatarURL("/media/x.png", "http://api", now)

	require.Regexp(t, regexp.MustCompile(`^http://api/media/x\.png\?t=\d+$`), got)
	assert.Equal(t, fmt.Sprintf("http://api/media/x.png?t=%d", now.UnixMilli()), got)
}

func TestNormalizeAvatarURL_PassThrough(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "", NormalizeAvatarURL("", "http://api", now))
	assert.Equal(t, "https://picsum.photos/seed/alex/150/150",
		NormalizeAvatarURL("https://picsum.photos/seed/alex/150/150", "http://api", now))
}

func TestUserFromRecord(t *testing.T) {
	now := time.UnixMilli(1756600000000)
	rec := UserRecord{
		ID:          2,
		Name:        "吴学姐",
		StudentID:   "2023002",
		Email:       "wu@example.edu",
		Avatar:      "/media/avatars/2.png",
		CreditScore: 88,
		Balance:     45,
	}

	u := UserFromRecord(rec, "http://api", now)

	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, "2023002", u.StudentID)
	assert.Equal(t, 88, u.CreditScore)
	assert.Equal(t, fmt.Sprintf("http://api/media/avatars/2.png?t=%d", now.UnixMilli()), u.Avatar)
}
