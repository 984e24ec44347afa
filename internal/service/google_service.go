package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// provisioning retries a synthesized username this many times before
	// giving up with a conflict
	maxUsernameAttempts = 5
)

var (
	ErrGoogleNotConfigured = errors.New("google oauth not configured")
	ErrMalformedProfile    = errors.New("provider profile missing required fields")
)

// GoogleProfile is the subset of the userinfo payload the reconciler needs.
type GoogleProfile struct {
	Subject string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type GoogleService struct {
	userRepo repository.UserRepository
	config   *oauth2.Config
}

// NewGoogleService builds the Google login service. With no client
// credentials it still constructs, but every flow entry point fails with
// ErrGoogleNotConfigured instead of crashing.
func NewGoogleService(userRepo repository.UserRepository, clientID, clientSecret, callbackURL string) *GoogleService {
	s := &GoogleService{userRepo: userRepo}

	if clientID != "" && clientSecret != "" {
		s.config = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		}
	}

	return s
}

func (s *GoogleService) Configured() bool {
	return s.config != nil
}

// AuthURL returns the Google consent page URL for the given CSRF state.
func (s *GoogleService) AuthURL(state string) (string, error) {
	if s.config == nil {
		return "", ErrGoogleNotConfigured
	}
	return s.config.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code, fetches the profile and
// reconciles it against the user store.
func (s *GoogleService) HandleCallback(ctx context.Context, code string) (*domain.User, error) {
	if s.config == nil {
		return nil, ErrGoogleNotConfigured
	}

	tok, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging auth code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, tok)
	if err != nil {
		return nil, err
	}

	return s.Reconcile(ctx, profile)
}

// Reconcile maps a Google profile onto exactly one local account:
// an existing link wins, then an email match gets the identity linked in
// place, and otherwise a fresh account is provisioned.
func (s *GoogleService) Reconcile(ctx context.Context, profile *GoogleProfile) (*domain.User, error) {
	if profile.Subject == "" || profile.Email == "" {
		return nil, ErrMalformedProfile
	}
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	user, err := s.userRepo.GetByProvider(ctx, domain.ProviderGoogle, profile.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.link(ctx, user, profile)
	}

	return s.provision(ctx, email, profile)
}

// link attaches the Google identity to an existing account with the same
// email. Same email is trusted to mean same person. The existing avatar is
// kept if present.
func (s *GoogleService) link(ctx context.Context, user *domain.User, profile *GoogleProfile) (*domain.User, error) {
	var avatar *string
	if profile.Picture != "" {
		avatar = &profile.Picture
	}

	if err := s.userRepo.LinkProvider(ctx, user.ID, domain.ProviderGoogle, profile.Subject, avatar); err != nil {
		return nil, err
	}

	provider := domain.ProviderGoogle
	user.Provider = &provider
	user.ProviderID = &profile.Subject
	if user.AvatarURL == nil {
		user.AvatarURL = avatar
	}
	return user, nil
}

func (s *GoogleService) provision(ctx context.Context, email string, profile *GoogleProfile) (*domain.User, error) {
	provider := domain.ProviderGoogle
	var avatar *string
	if profile.Picture != "" {
		avatar = &profile.Picture
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		now := time.Now()
		user := &domain.User{
			ID:         uuid.New(),
			Email:      email,
			Username:   synthesizeUsername(profile.Name),
			Provider:   &provider,
			ProviderID: &profile.Subject,
			AvatarURL:  avatar,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err := s.userRepo.Create(ctx, user)
		switch {
		case err == nil:
			return user, nil
		case errors.Is(err, domain.ErrUsernameTaken):
			continue // re-roll the suffix
		case errors.Is(err, domain.ErrEmailTaken):
			// Lost a race against a concurrent signup with the same email.
			return nil, domain.ErrAccountConflict
		default:
			return nil, fmt.Errorf("provisioning user: %w", err)
		}
	}

	return nil, domain.ErrAccountConflict
}

// synthesizeUsername turns a display name into a username candidate:
// whitespace stripped, lowercased, with a random numeric suffix.
func synthesizeUsername(displayName string) string {
	base := strings.ToLower(strings.Join(strings.Fields(displayName), ""))
	if base == "" {
		base = "user"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return base + strconv.Itoa(rand.IntN(1000))
}

func (s *GoogleService) fetchProfile(ctx context.Context, tok *oauth2.Token) (*GoogleProfile, error) {
	client := s.config.Client(ctx, tok)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %s", resp.Status)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}

	return &profile, nil
}
