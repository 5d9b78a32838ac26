package storefront

import "github.com/rs/zerolog/log"

// Notifier shows short messages to the user, the toasts and modals of the
// storefront.
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string, err error)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Info().Msg(msg)
}

func (LogNotifier) Warn(msg string) {
	log.Warn().Msg(msg)
}

func (LogNotifier) Error(msg string, err error) {
	log.Error().Err(err).Msg(msg)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(title, text string) bool
}

// AlwaysConfirm accepts every prompt.
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(string, string) bool { return true }
