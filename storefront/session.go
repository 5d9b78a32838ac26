package storefront

import (
	"errors"
	"strings"
	"sync"
	"time"

	"bookStore/localstore"
	"bookStore/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// User is a customer signed in through the external identity provider.
type User struct {
	Uid   string
	Email string
}

// LocalStore is the persisted part of the session.
type LocalStore interface {
	SaveToken(token string, expiresAt time.Time) error
	LoadToken() (token string, expiresAt time.Time, err error)
	ClearToken() error
	Get(key string) (string, error)
	Set(key, value string) error
}

type SessionState struct {
	User       *User
	Token      string
	Expiration time.Time
	TokenRole  string
}

type Session struct {
	store      *Store[SessionState]
	local      LocalStore
	adminEmail string
	mu         sync.Mutex
	now        func() time.Time
}

// NewSession creates a session. local may be nil, then nothing survives a
// restart.
func NewSession(local LocalStore, adminEmail string) *Session {
	return &Session{
		store:      NewStore(SessionState{}),
		local:      local,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		now:        time.Now,
	}
}

// Load restores a stored admin token. An expired token is removed.
func (s *Session) Load() error {
	if s.local == nil {
		return nil
	}
	token, exp, err := s.local.LoadToken()
	if errors.Is(err, localstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !s.now().Before(exp) {
		log.Info().Msg("stored admin token expired")
		return s.local.ClearToken()
	}
	role := tokenRole(token)
	s.store.Update(func(st SessionState) SessionState {
		st.Token = token
		st.Expiration = exp
		st.TokenRole = role
		return st
	})
	return nil
}

func (s *Session) Login(u User) {
	s.store.Update(func(st SessionState) SessionState {
		st.User = &u
		return st
	})
}

// Logout forgets the user and the admin token.
func (s *Session) Logout() {
	s.store.Set(SessionState{})
	if s.local != nil {
		if err := s.local.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("token not cleared")
		}
	}
}

func (s *Session) User() (User, bool) {
	st := s.store.Get()
	if st.User == nil {
		return User{}, false
	}
	return *st.User, true
}

func tokenClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	return claims, err
}

func tokenRole(token string) string {
	claims, err := tokenClaims(token)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// SetAdminToken stores a bearer token issued by the admin login. Its
// expiration is read from the exp claim.
func (s *Session) SetAdminToken(token string) error {
	claims, err := tokenClaims(token)
	if err != nil {
		return err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiration")
	}
	role, _ := claims["role"].(string)
	if s.local != nil {
		if err = s.local.SaveToken(token, exp.Time); err != nil {
			return err
		}
	}
	s.store.Update(func(st SessionState) SessionState {
		st.Token = token
		st.Expiration = exp.Time
		st.TokenRole = role
		return st
	})
	return nil
}

// Token returns the admin bearer token while it is valid. It satisfies
// client.TokenSource.
func (s *Session) Token() string {
	st := s.store.Get()
	if st.Token == "" || !s.now().Before(st.Expiration) {
		return ""
	}
	return st.Token
}

func (s *Session) Role() string {
	st := s.store.Get()
	if st.User != nil && s.adminEmail != "" && strings.EqualFold(st.User.Email, s.adminEmail) {
		return models.RoleAdmin
	}
	if st.TokenRole == models.RoleAdmin && s.Token() != "" {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func (s *Session) IsAdmin() bool {
	return s.Role() == models.RoleAdmin
}

// RequireAdmin runs before every protected navigation. A missing or expired
// token is cleared and ErrLoginRequired returned.
func (s *Session) RequireAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.Get()
	if st.Token != "" && s.now().Before(st.Expiration) {
		return nil
	}
	if st.Token != "" {
		log.Info().Msg("admin token expired")
		s.ClearToken()
	}
	return ErrLoginRequired
}

// ClearToken drops the admin token but keeps the customer signed in.
func (s *Session) ClearToken() {
	s.store.Update(func(st SessionState) SessionState {
		st.Token = ""
		st.Expiration = time.Time{}
		st.TokenRole = ""
		return st
	})
	if s.local != nil {
		if err := s.local.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("token not cleared")
		}
	}
}

func (s *Session) Avatar() string {
	if s.local == nil {
		return ""
	}
	v, _ := s.local.Get(localstore.KeyAvatar)
	return v
}

func (s *Session) SetAvatar(emoji string) error {
	if s.local == nil {
		return nil
	}
	return s.local.Set(localstore.KeyAvatar, emoji)
}

func (s *Session) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}
