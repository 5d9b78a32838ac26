package services

import (
	"errors"
	"time"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type AdminClaims struct {
	UserId   int    `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	ur     repository.UserRepository
	sr     repository.SessionRepository
	secret []byte
	now    func() time.Time
}

func NewAuthService(uRepo repository.UserRepository, sRepo repository.SessionRepository, secret string) AuthService {
	return AuthService{
		ur:     uRepo,
		sr:     sRepo,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// AdminLogin checks the credentials and issues a signed token whose id is a
// server side session, so logging out revokes it before it expires.
func (as *AuthService) AdminLogin(creds models.Credentials) (res entities.LoginResponse, err error) {
	if creds.Username == "" || creds.Password == "" {
		err = models.ErrBadRequest
		return
	}
	uModel, exists, err := as.ur.GetUserByName(creds.Username)
	if err != nil {
		return
	}
	if !exists || !as.ur.VerifyPassword(uModel.Password, creds.Password) {
		log.Warn().Str("username", creds.Username).Msg("AdminLogin: invalid credentials")
		err = models.ErrUnautorized
		return
	}
	if uModel.Role != models.RoleAdmin {
		err = models.ErrForbidden
		return
	}

	sessionId, err := as.sr.CreateSession(uModel.Id, uModel.Role)
	if err != nil {
		return
	}
	now := as.now()
	claims := AdminClaims{
		UserId:   uModel.Id,
		Username: uModel.Username,
		Role:     uModel.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(repository.SessionTTL)),
		},
	}
	token, e := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if e != nil {
		log.Error().Err(e).Msg("AdminLogin")
		err = models.ErrServerError
		return
	}
	res = entities.LoginResponse{
		Message: "Admin Authentication successful",
		Token:   token,
		User: entities.AdminUser{
			Username: uModel.Username,
			Role:     uModel.Role,
		},
	}
	return
}

func (as *AuthService) parse(tokenString string) (claims *AdminClaims, err error) {
	claims = &AdminClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Msg("admin token expired")
		} else {
			log.Warn().Err(err).Msg("invalid admin token")
		}
		err = models.ErrUnautorized
	}
	return
}

// CheckAdmin accepts a token only while its session is alive and belongs to
// an admin.
func (as *AuthService) CheckAdmin(tokenString string) (claims *AdminClaims, err error) {
	claims, err = as.parse(tokenString)
	if err != nil {
		return
	}
	userId, role, exists, err := as.sr.GetUserSessionInfo(claims.ID)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}
	if role != models.RoleAdmin || claims.Role != models.RoleAdmin {
		err = models.ErrForbidden
		return
	}
	// The account may have been removed or demoted since the session began.
	uModel, exists, err := as.ur.GetUserById(userId)
	if err != nil {
		return
	}
	if !exists {
		log.Warn().Int("user", userId).Msg("CheckAdmin: user no longer exists")
		err = models.ErrUnautorized
		return
	}
	if uModel.Role != models.RoleAdmin {
		log.Warn().Int("user", userId).Msg("CheckAdmin: user is no longer admin")
		err = models.ErrForbidden
	}
	return
}

func (as *AuthService) Logout(tokenString string) (err error) {
	claims, err := as.parse(tokenString)
	if err != nil {
		return
	}
	err = as.sr.DeleteSession(claims.ID)
	return
}
