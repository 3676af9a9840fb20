package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

type CardService struct {
	cardRepo    repo_interfaces.CardRepository
	accountRepo repo_interfaces.AccountRepository
	holderRepo  repo_interfaces.HolderRepository
	policy      config.Policy
}

func NewCardService(
	cardRepo repo_interfaces.CardRepository,
	accountRepo repo_interfaces.AccountRepository,
	holderRepo repo_interfaces.HolderRepository,
	policy config.Policy,
) *CardService {
	return &CardService{
		cardRepo:    cardRepo,
		accountRepo: accountRepo,
		holderRepo:  holderRepo,
		policy:      policy,
	}
}

func (s *CardService) CreateCard(ctx context.Context, userID string, req models.CreateCardRequest) (commons.Response[models.CardResponse], error) {
	logger.Info("card service create card request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("card service create card validation failed", err, nil)
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetOwnedByUser(ctx, strings.TrimSpace(req.AccountID), userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CardResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.CardResponse]("failed to create card", "Unable to create card right now"), err
	}

	if account.Status != domain.AccountStatusActive {
		err := domain.ErrAccountNotActive
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	if err := s.enforceActiveCardLimit(ctx, account.ID); err != nil {
		if errors.Is(err, domain.ErrCardLimitReached) {
			return commons.ErrorResponse[models.CardResponse]("Maximum number of active cards reached", err.Error()), err
		}
		return commons.ErrorResponse[models.CardResponse]("failed to create card", "Unable to create card right now"), err
	}

	dailyLimitMinor, err := models.ToMinorUnits(req.DailyLimit)
	if err != nil {
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	cardNumber := strings.TrimSpace(req.CardNumber)
	card := domain.Card{
		AccountID:       account.ID,
		LastFour:        cardNumber[len(cardNumber)-4:],
		NumberHash:      hashCardNumber(cardNumber),
		CardType:        domain.CardType(strings.ToLower(strings.TrimSpace(req.CardType))),
		Status:          domain.CardStatusActive,
		ExpiryMonth:     req.ExpiryMonth,
		ExpiryYear:      req.ExpiryYear,
		DailyLimitMinor: dailyLimitMinor,
	}

	created, err := s.cardRepo.Create(ctx, card)
	if err != nil {
		logger.Error("card service create card failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[models.CardResponse]("failed to create card", "Unable to create card right now"), err
	}

	logger.Info("card service create card success", logger.Fields{
		"cardId":    created.ID,
		"accountId": created.AccountID,
	})

	return commons.SuccessResponse("card created successfully", mapCardToResponse(created)), nil
}

func (s *CardService) ListCards(ctx context.Context, userID string) (commons.Response[[]models.CardResponse], error) {
	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.CardResponse]("Account holder profile not found"), err
		}
		return commons.ErrorResponse[[]models.CardResponse]("failed to list cards", "Unable to fetch cards right now"), err
	}

	cards, err := s.cardRepo.ListByHolder(ctx, holder.ID)
	if err != nil {
		return commons.ErrorResponse[[]models.CardResponse]("failed to list cards", "Unable to fetch cards right now"), err
	}

	responses := make([]models.CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, mapCardToResponse(card))
	}

	return commons.SuccessResponse("cards fetched successfully", responses), nil
}

func (s *CardService) GetCard(ctx context.Context, userID string, cardID string) (commons.Response[models.CardResponse], error) {
	card, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CardResponse]("Card not found"), err
		}
		return commons.ErrorResponse[models.CardResponse]("failed to get card", "Unable to fetch card right now"), err
	}

	return commons.SuccessResponse("card fetched successfully", mapCardToResponse(card)), nil
}

func (s *CardService) UpdateCardStatus(ctx context.Context, userID string, cardID string, req models.UpdateCardStatusRequest) (commons.Response[models.CardResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	card, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CardResponse]("Card not found"), err
		}
		return commons.ErrorResponse[models.CardResponse]("failed to update card", "Unable to update card right now"), err
	}

	target := domain.CardStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	// Cancellation is terminal.
	if card.Status == domain.CardStatusCancelled {
		err := domain.ErrStatusTransitionNotAllowed
		return commons.ErrorResponse[models.CardResponse]("validation failed", "cancelled cards cannot change status"), err
	}

	// Reactivating a frozen card counts against the active-card cap again.
	if target == domain.CardStatusActive && card.Status != domain.CardStatusActive {
		if err := s.enforceActiveCardLimit(ctx, card.AccountID); err != nil {
			if errors.Is(err, domain.ErrCardLimitReached) {
				return commons.ErrorResponse[models.CardResponse]("Maximum number of active cards reached", err.Error()), err
			}
			return commons.ErrorResponse[models.CardResponse]("failed to update card", "Unable to update card right now"), err
		}
	}

	updated, err := s.cardRepo.UpdateStatus(ctx, card.ID, target)
	if err != nil {
		logger.Error("card service update status failed", err, logger.Fields{"cardId": card.ID})
		return commons.ErrorResponse[models.CardResponse]("failed to update card", "Unable to update card right now"), err
	}

	logger.Info("card service update status success", logger.Fields{
		"cardId": updated.ID,
		"status": string(updated.Status),
	})

	return commons.SuccessResponse("card status updated successfully", mapCardToResponse(updated)), nil
}

func (s *CardService) UpdateCardLimit(ctx context.Context, userID string, cardID string, req models.UpdateCardLimitRequest) (commons.Response[models.CardResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	card, err := s.resolveCard(ctx, userID, cardID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CardResponse]("Card not found"), err
		}
		return commons.ErrorResponse[models.CardResponse]("failed to update card", "Unable to update card right now"), err
	}

	if card.Status == domain.CardStatusCancelled {
		err := domain.ErrStatusTransitionNotAllowed
		return commons.ErrorResponse[models.CardResponse]("validation failed", "cancelled cards cannot be updated"), err
	}

	dailyLimitMinor, err := models.ToMinorUnits(req.DailyLimit)
	if err != nil {
		return commons.ErrorResponse[models.CardResponse]("validation failed", err.Error()), err
	}

	updated, err := s.cardRepo.UpdateDailyLimit(ctx, card.ID, dailyLimitMinor)
	if err != nil {
		logger.Error("card service update limit failed", err, logger.Fields{"cardId": card.ID})
		return commons.ErrorResponse[models.CardResponse]("failed to update card", "Unable to update card right now"), err
	}

	return commons.SuccessResponse("card limit updated successfully", mapCardToResponse(updated)), nil
}

func (s *CardService) resolveCard(ctx context.Context, userID string, cardID string) (domain.Card, error) {
	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Card{}, err
	}
	return s.cardRepo.GetForHolder(ctx, strings.TrimSpace(cardID), holder.ID)
}

func (s *CardService) enforceActiveCardLimit(ctx context.Context, accountID string) error {
	active, err := s.cardRepo.CountActiveByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if active >= s.policy.MaxActiveCards {
		return domain.ErrCardLimitReached
	}
	return nil
}

func hashCardNumber(cardNumber string) string {
	sum := sha256.Sum256([]byte(cardNumber))
	return hex.EncodeToString(sum[:])
}

func mapCardToResponse(card domain.Card) models.CardResponse {
	return models.CardResponse{
		ID:              card.ID,
		AccountID:       card.AccountID,
		MaskedNumber:    "**** **** **** " + card.LastFour,
		LastFour:        card.LastFour,
		CardType:        string(card.CardType),
		Status:          string(card.Status),
		ExpiryMonth:     card.ExpiryMonth,
		ExpiryYear:      card.ExpiryYear,
		DailyLimit:      models.FormatMinorUnits(card.DailyLimitMinor),
		DailyLimitMinor: card.DailyLimitMinor,
		CreatedAt:       card.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       card.UpdatedAt.Format(time.RFC3339),
	}
}
