package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateRegister(email, username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	// Username
	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	// Password
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidatePlaylist(title string, tags []string, coverGradient string) ValidationErrors {
	errs := make(ValidationErrors)

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	if len(tags) > 5 {
		errs.Add("tags", "A playlist can have at most 5 tags")
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errs.Add("tags", "Tags cannot be empty")
			break
		}
	}

	if len(coverGradient) > 100 {
		errs.Add("cover_gradient", "Cover gradient is too long")
	}

	return errs
}

// ValidatePlaylistUpdate checks only the fields present in a partial update.
func ValidatePlaylistUpdate(title *string, tags *[]string, coverGradient *string) ValidationErrors {
	errs := make(ValidationErrors)

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			errs.Add("title", "Title cannot be empty")
		} else if len(trimmed) > 255 {
			errs.Add("title", "Title is too long")
		}
	}

	if tags != nil && len(*tags) > 5 {
		errs.Add("tags", "A playlist can have at most 5 tags")
	}

	if coverGradient != nil && len(*coverGradient) > 100 {
		errs.Add("cover_gradient", "Cover gradient is too long")
	}

	return errs
}

func ValidateSong(title, artist, songURL, platform string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 255 {
		errs.Add("title", "Title is too long")
	}

	if strings.TrimSpace(artist) == "" {
		errs.Add("artist", "Artist is required")
	} else if len(artist) > 255 {
		errs.Add("artist", "Artist is too long")
	}

	if songURL == "" {
		errs.Add("url", "URL is required")
	} else if u, err := url.Parse(songURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs.Add("url", "URL must be a valid absolute URL")
	}

	if strings.TrimSpace(platform) == "" {
		errs.Add("platform", "Platform is required")
	} else if len(platform) > 50 {
		errs.Add("platform", "Platform is too long")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	} else if len(email) > 255 {
		errs.Add("email", "Email is too long")
	}
}
