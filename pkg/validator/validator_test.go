package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		username string
		password string
		wantErrs []string
	}{
		{"valid", "alice@example.com", "alice", "secret123", nil},
		{"valid with underscore and dash", "alice@example.com", "alice_w-99", "secret123", nil},
		{"empty everything", "", "", "", []string{"email", "username", "password"}},
		{"bad email", "not-an-email", "alice", "secret123", []string{"email"}},
		{"short username", "alice@example.com", "ab", "secret123", []string{"username"}},
		{"long username", "alice@example.com", strings.Repeat("a", 51), "secret123", []string{"username"}},
		{"username with spaces", "alice@example.com", "alice walker", "secret123", []string{"username"}},
		{"short password", "alice@example.com", "alice", "12345", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.email, tt.username, tt.password)
			if len(tt.wantErrs) == 0 {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			assert.Len(t, errs, len(tt.wantErrs))
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("alice@example.com", "secret123").HasErrors())

	errs := ValidateLogin("", "")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	// Login never complains about password strength.
	assert.False(t, ValidateLogin("alice@example.com", "x").HasErrors())
}

func TestValidatePlaylist(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		tags     []string
		gradient string
		wantErrs []string
	}{
		{"valid", "Late Night Coding", []string{"lofi", "chill"}, "from-purple-500", nil},
		{"valid without extras", "Mix", nil, "", nil},
		{"missing title", "", nil, "", []string{"title"}},
		{"whitespace title", "   ", nil, "", []string{"title"}},
		{"long title", strings.Repeat("a", 256), nil, "", []string{"title"}},
		{"too many tags", "Mix", []string{"a", "b", "c", "d", "e", "f"}, "", []string{"tags"}},
		{"empty tag", "Mix", []string{"lofi", " "}, "", []string{"tags"}},
		{"long gradient", "Mix", nil, strings.Repeat("x", 101), []string{"cover_gradient"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePlaylist(tt.title, tt.tags, tt.gradient)
			if len(tt.wantErrs) == 0 {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidatePlaylistUpdate(t *testing.T) {
	// Absent fields are not validated.
	assert.False(t, ValidatePlaylistUpdate(nil, nil, nil).HasErrors())

	empty := ""
	errs := ValidatePlaylistUpdate(&empty, nil, nil)
	assert.Contains(t, errs, "title")

	tags := []string{"a", "b", "c", "d", "e", "f"}
	errs = ValidatePlaylistUpdate(nil, &tags, nil)
	assert.Contains(t, errs, "tags")

	valid := "Renamed"
	okTags := []string{"lofi"}
	assert.False(t, ValidatePlaylistUpdate(&valid, &okTags, nil).HasErrors())
}

func TestValidateSong(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		artist   string
		url      string
		platform string
		wantErrs []string
	}{
		{"valid", "Midnight City", "M83", "https://youtube.com/watch?v=dX3k_QDnzHE", "youtube", nil},
		{"missing everything", "", "", "", "", []string{"title", "artist", "url", "platform"}},
		{"relative url", "Song", "Artist", "/watch?v=abc", "youtube", []string{"url"}},
		{"no scheme", "Song", "Artist", "youtube.com/watch", "youtube", []string{"url"}},
		{"long platform", "Song", "Artist", "https://example.com/x", strings.Repeat("p", 51), []string{"platform"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSong(tt.title, tt.artist, tt.url, tt.platform)
			if len(tt.wantErrs) == 0 {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}
