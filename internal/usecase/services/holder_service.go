package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

const holderDateLayout = "2006-01-02"

type HolderService struct {
	holderRepo repo_interfaces.HolderRepository
}

func NewHolderService(holderRepo repo_interfaces.HolderRepository) *HolderService {
	return &HolderService{holderRepo: holderRepo}
}

func (s *HolderService) CreateHolder(ctx context.Context, userID string, req models.CreateHolderRequest) (commons.Response[models.HolderResponse], error) {
	logger.Info("holder service create holder request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("holder service create holder validation failed", err, nil)
		return commons.ErrorResponse[models.HolderResponse]("validation failed", err.Error()), err
	}

	dateOfBirth, err := time.ParseInLocation(holderDateLayout, strings.TrimSpace(req.DateOfBirth), time.UTC)
	if err != nil {
		err := errors.New("dateOfBirth must be a valid date in YYYY-MM-DD format")
		return commons.ErrorResponse[models.HolderResponse]("validation failed", err.Error()), err
	}

	// One profile per user. The unique constraint on user_id backs this up
	// under concurrent submissions.
	if _, err := s.holderRepo.GetByUserID(ctx, userID); err == nil {
		err := errors.New("account holder profile already exists")
		return commons.ErrorResponse[models.HolderResponse]("validation failed", err.Error()), err
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return commons.ErrorResponse[models.HolderResponse]("failed to create profile", "Unable to create profile right now"), err
	}

	holder := domain.AccountHolder{
		UserID:      userID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dateOfBirth,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		SSNLastFour: strings.TrimSpace(req.SSNLastFour),
	}

	created, err := s.holderRepo.Create(ctx, holder)
	if err != nil {
		logger.Error("holder service create holder failed", err, logger.Fields{"userId": userID})
		return commons.ErrorResponse[models.HolderResponse]("failed to create profile", "Unable to create profile right now"), err
	}

	logger.Info("holder service create holder success", logger.Fields{"holderId": created.ID})

	return commons.SuccessResponse("profile created successfully", mapHolderToResponse(created)), nil
}

func (s *HolderService) GetHolder(ctx context.Context, userID string) (commons.Response[models.HolderResponse], error) {
	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.HolderResponse]("Account holder profile not found"), err
		}
		return commons.ErrorResponse[models.HolderResponse]("failed to get profile", "Unable to fetch profile right now"), err
	}

	return commons.SuccessResponse("profile fetched successfully", mapHolderToResponse(holder)), nil
}

func (s *HolderService) UpdateHolder(ctx context.Context, userID string, req models.UpdateHolderRequest) (commons.Response[models.HolderResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.HolderResponse]("validation failed", err.Error()), err
	}

	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.HolderResponse]("Account holder profile not found"), err
		}
		return commons.ErrorResponse[models.HolderResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	req.ToPatch().Apply(&holder)

	updated, err := s.holderRepo.Update(ctx, holder)
	if err != nil {
		logger.Error("holder service update holder failed", err, logger.Fields{"holderId": holder.ID})
		return commons.ErrorResponse[models.HolderResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	return commons.SuccessResponse("profile updated successfully", mapHolderToResponse(updated)), nil
}

func mapHolderToResponse(holder domain.AccountHolder) models.HolderResponse {
	return models.HolderResponse{
		ID:          holder.ID,
		UserID:      holder.UserID,
		FirstName:   holder.FirstName,
		LastName:    holder.LastName,
		DateOfBirth: holder.DateOfBirth.Format(holderDateLayout),
		Phone:       holder.Phone,
		Address:     holder.Address,
		SSNLastFour: holder.SSNLastFour,
		CreatedAt:   holder.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   holder.UpdatedAt.Format(time.RFC3339),
	}
}
