package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"bookStore/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionTTL matches the lifetime of the admin bearer token.
const SessionTTL = time.Hour

const sessionPrefix = "session:"

type SessionRepository interface {
	CreateSession(userId int, role string) (sessionId string, err error)
	DeleteSession(sessionId string) (err error)
	GetUserSessionInfo(sessionId string) (userId int, role string, exists bool, err error)
}

type SessionRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewSessionRepository(redis_conn *redis.Client, _ctx context.Context) (SessionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &SessionRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (s *SessionRepo) CreateSession(userId int, role string) (sessionId string, err error) {
	sessionId = uuid.NewString()
	key := sessionPrefix + sessionId
	_, err = s.rdb.TxPipelined(s.ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(s.ctx, key, "userId", userId, "role", role)
		pipe.Expire(s.ctx, key, SessionTTL)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("CreateSession")
		err = models.ErrServerError
		sessionId = ""
	}
	return
}

func (s *SessionRepo) DeleteSession(sessionId string) (err error) {
	err = s.rdb.Del(s.ctx, sessionPrefix+sessionId).Err()
	if err != nil {
		log.Error().Err(err).Msg("DeleteSession")
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) GetUserSessionInfo(sessionId string) (userId int, role string, exists bool, err error) {
	val, err := s.rdb.HGetAll(s.ctx, sessionPrefix+sessionId).Result()
	if err != nil {
		log.Error().Err(err).Msg("GetUserSessionInfo")
		err = models.ErrServerError
		return
	}
	if len(val) == 0 {
		return
	}
	userId, _ = strconv.Atoi(val["userId"])
	role = val["role"]
	exists = true
	return
}
