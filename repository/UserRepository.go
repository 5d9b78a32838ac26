package repository

import (
	"database/sql"
	"errors"

	"bookStore/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserById(id int) (models.User_db, bool, error)
	GetUserByName(name string) (models.User_db, bool, error)
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
	UpdatePassword(userId int, newPassword string) error
	AddNewUser(uModel models.User_db) (newUserId int, err error)
	EnsureAdmin(username string, password string) (err error)
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepository(conn *sql.DB) (UserRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &UserRepo{
		db: conn,
	}, nil
}

func (u *UserRepo) getUser(caller string, query string, arg any) (uModel models.User_db, exists bool, err error) {
	row := u.db.QueryRow(query, arg)
	err = row.Scan(&uModel.Id, &uModel.Username, &uModel.Password, &uModel.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		log.Error().Err(err).Msg(caller)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (u *UserRepo) GetUserById(id int) (uModel models.User_db, exists bool, err error) {
	return u.getUser("GetUserById", "SELECT Id, Username, Password, Role FROM Users WHERE Id = $1", id)
}

func (u *UserRepo) GetUserByName(name string) (uModel models.User_db, exists bool, err error) {
	return u.getUser("GetUserByName", "SELECT Id, Username, Password, Role FROM Users WHERE Username = $1", name)
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(userPass), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("EncryptPassword")
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		log.Debug().Err(err).Msg("VerifyPassword")
	}
	return err == nil
}

func (u *UserRepo) AddNewUser(uModel models.User_db) (newUserId int, err error) {
	err = u.db.QueryRow("INSERT INTO Users (Username, Password, Role) VALUES ($1, $2, $3) RETURNING Id", uModel.Username, uModel.Password, uModel.Role).Scan(&newUserId)
	if err != nil {
		log.Error().Err(err).Msg("AddNewUser")
		err = models.ErrServerError
	}
	return
}

func (u *UserRepo) UpdatePassword(userId int, newPassword string) error {
	_, err := u.db.Exec("UPDATE Users SET Password = $1 WHERE Id = $2", newPassword, userId)
	if err != nil {
		log.Error().Err(err).Msg("UpdatePassword")
		err = models.ErrServerError
	}
	return err
}

// EnsureAdmin seeds the configured admin account. An existing account keeps
// its password unless it no longer matches the configured one.
func (u *UserRepo) EnsureAdmin(username string, password string) (err error) {
	if username == "" || password == "" {
		log.Warn().Msg("admin credentials are not configured, skipping seed")
		return
	}
	user, exists, err := u.GetUserByName(username)
	if err != nil {
		return
	}
	if exists && u.VerifyPassword(user.Password, password) {
		return
	}
	hashed, err := u.EncryptPassword(password)
	if err != nil {
		return
	}
	if exists {
		log.Info().Str("username", username).Msg("updating admin password")
		err = u.UpdatePassword(user.Id, hashed)
		return
	}
	log.Info().Str("username", username).Msg("creating admin user")
	_, err = u.AddNewUser(models.User_db{Username: username, Password: hashed, Role: models.RoleAdmin})
	return
}
