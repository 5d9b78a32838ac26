package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookStore/entities"
	"bookStore/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkoutPrefix = "checkout:"

// CheckoutTTL bounds how long an unpaid checkout session can still be polled.
const CheckoutTTL = 24 * time.Hour

type CheckoutRepository interface {
	SetCheckout(session entities.CheckoutSession) (err error)
	GetCheckout(sessionId string) (res entities.CheckoutSession, exists bool, err error)
	SetCheckoutStatus(sessionId string, status string) (err error)
}

type CheckoutRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewCheckoutRepository(redis_conn *redis.Client, _ctx context.Context) (CheckoutRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CheckoutRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (c *CheckoutRepo) SetCheckout(session entities.CheckoutSession) (err error) {
	jsonData, err := json.Marshal(session)
	if err != nil {
		log.Error().Err(err).Msg("SetCheckout[1]")
		err = models.ErrServerError
		return
	}
	err = c.rdb.Set(c.ctx, checkoutPrefix+session.SessionId, jsonData, CheckoutTTL).Err()
	if err != nil {
		log.Error().Err(err).Msg("SetCheckout[2]")
		err = models.ErrServerError
	}
	return
}

func (c *CheckoutRepo) GetCheckout(sessionId string) (res entities.CheckoutSession, exists bool, err error) {
	val, e := c.rdb.Get(c.ctx, checkoutPrefix+sessionId).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		log.Error().Err(e).Msg("GetCheckout[1]")
		err = models.ErrServerError
		return
	}
	err = json.Unmarshal([]byte(val), &res)
	if err != nil {
		log.Error().Err(err).Msg("GetCheckout[2]")
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (c *CheckoutRepo) SetCheckoutStatus(sessionId string, status string) (err error) {
	session, exists, err := c.GetCheckout(sessionId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	session.Status = status
	err = c.SetCheckout(session)
	return
}
