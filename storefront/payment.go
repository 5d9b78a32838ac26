package storefront

import (
	"context"
	"time"

	"bookStore/entities"
	"bookStore/models"

	"github.com/rs/zerolog/log"
)

// PaymentPollInterval is how often the success page asks about a payment.
const PaymentPollInterval = 5 * time.Second

type PaymentAPI interface {
	CheckPayment(ctx context.Context, sessionId string) (entities.PaymentStatus, error)
}

type PaymentPoller struct {
	api      PaymentAPI
	interval time.Duration
}

func NewPaymentPoller(api PaymentAPI, interval time.Duration) *PaymentPoller {
	if interval <= 0 {
		interval = PaymentPollInterval
	}
	return &PaymentPoller{api: api, interval: interval}
}

// Wait checks the session right away and then every interval until it is
// paid. It stops on the first failed check or when ctx ends.
func (p *PaymentPoller) Wait(ctx context.Context, sessionId string) (entities.PaymentStatus, error) {
	status, err := p.api.CheckPayment(ctx, sessionId)
	if err != nil {
		log.Error().Err(err).Str("session", sessionId).Msg("check payment")
		return status, err
	}
	if status.Status == models.PaymentPaid {
		return status, nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
			status, err = p.api.CheckPayment(ctx, sessionId)
			if err != nil {
				log.Error().Err(err).Str("session", sessionId).Msg("check payment")
				return status, err
			}
			if status.Status == models.PaymentPaid {
				return status, nil
			}
			log.Debug().Str("session", sessionId).Str("status", status.Status).Msg("payment pending")
		}
	}
}
