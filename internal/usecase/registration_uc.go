package usecase

import (
	"context"
	"errors"

	"telegram-registration-bot/internal/domain"
	"telegram-registration-bot/internal/domain/model"
	"telegram-registration-bot/internal/domain/ports/repository"
	"telegram-registration-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ RegistrationUseCase = (*registrationUC)(nil)

// RegistrationUseCase covers the first-contact flow: membership check on
// /start and the insert behind the accept button.
type RegistrationUseCase interface {
	IsRegistered(ctx context.Context, tgID int64) (bool, error)
	// Register re-verifies membership and persists the registrant. It returns
	// domain.ErrAlreadyExists when the user is already in the store, including
	// when a concurrent accept wins the race between the re-check and the
	// insert.
	Register(ctx context.Context, tgID int64, username, firstName string) (*model.Registrant, error)
}

type registrationUC struct {
	regs repository.RegistrantRepository
	log  *zerolog.Logger
}

func NewRegistrationUseCase(regs repository.RegistrantRepository, logger *zerolog.Logger) *registrationUC {
	return &registrationUC{regs: regs, log: logger}
}

func (u *registrationUC) IsRegistered(ctx context.Context, tgID int64) (bool, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.IsRegistered")()
	return u.regs.Exists(ctx, tgID)
}

func (u *registrationUC) Register(ctx context.Context, tgID int64, username, firstName string) (*model.Registrant, error) {
	defer logging.TraceDuration(u.log, "RegistrationUC.Register")()

	// Guard against double-submission: the offer may be minutes old by the
	// time the button is pressed.
	exists, err := u.regs.Exists(ctx, tgID)
	if err != nil {
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("membership re-check failed")
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	reg, err := model.NewRegistrant(tgID, username, firstName)
	if err != nil {
		return nil, err
	}
	if err := u.regs.Insert(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the race against a concurrent accept; the unique
			// constraint is the only arbiter here.
			return nil, domain.ErrAlreadyExists
		}
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to register user")
		return nil, err
	}
	u.log.Info().Int64("tg_id", tgID).Str("username", username).Msg("user registered")
	return reg, nil
}
