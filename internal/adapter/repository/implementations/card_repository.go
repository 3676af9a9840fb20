package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
)

const selectCard = `
SELECT c.id, c.account_id, c.card_number_last_four, c.card_number_hash, c.card_type, c.status, c.expiry_month, c.expiry_year, c.daily_limit_minor, c.created_at, c.updated_at
FROM cards c`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	logger.Info("card repository create", logger.Fields{
		"accountId": card.AccountID,
		"cardType":  card.CardType,
	})

	const query = `
INSERT INTO cards (id, account_id, card_number_last_four, card_number_hash, card_type, status, expiry_month, expiry_year, daily_limit_minor)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, updated_at`

	card.ID = uuid.NewString()
	if err := r.db.QueryRowContext(
		ctx,
		query,
		card.ID,
		card.AccountID,
		card.LastFour,
		card.NumberHash,
		card.CardType,
		card.Status,
		card.ExpiryMonth,
		card.ExpiryYear,
		card.DailyLimitMinor,
	).Scan(&card.CreatedAt, &card.UpdatedAt); err != nil {
		logger.Error("card repository create failed", err, logger.Fields{
			"accountId": card.AccountID,
		})
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}

	return card, nil
}

func (r *CardRepository) GetForHolder(ctx context.Context, cardID string, holderID string) (domain.Card, error) {
	const query = selectCard + `
JOIN accounts a ON a.id = c.account_id
WHERE c.id = $1 AND a.holder_id = $2`

	return scanCard(r.db.QueryRowContext(ctx, query, cardID, holderID))
}

func (r *CardRepository) ListByHolder(ctx context.Context, holderID string) ([]domain.Card, error) {
	const query = selectCard + `
JOIN accounts a ON a.id = c.account_id
WHERE a.holder_id = $1
ORDER BY c.created_at`

	rows, err := r.db.QueryContext(ctx, query, holderID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.AccountID,
			&card.LastFour,
			&card.NumberHash,
			&card.CardType,
			&card.Status,
			&card.ExpiryMonth,
			&card.ExpiryYear,
			&card.DailyLimitMinor,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return cards, nil
}

func (r *CardRepository) CountActiveByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM cards WHERE account_id = $1 AND status = $2`,
		accountID,
		domain.CardStatusActive,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active cards: %w", err)
	}
	return count, nil
}

func (r *CardRepository) UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus) (domain.Card, error) {
	const query = `
UPDATE cards
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING id`

	return r.applyUpdate(ctx, query, cardID, status)
}

func (r *CardRepository) UpdateDailyLimit(ctx context.Context, cardID string, dailyLimitMinor int64) (domain.Card, error) {
	const query = `
UPDATE cards
SET daily_limit_minor = $2, updated_at = NOW()
WHERE id = $1
RETURNING id`

	return r.applyUpdate(ctx, query, cardID, dailyLimitMinor)
}

func (r *CardRepository) applyUpdate(ctx context.Context, query string, cardID string, arg any) (domain.Card, error) {
	var id string
	if err := r.db.QueryRowContext(ctx, query, cardID, arg).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, domain.ErrRecordNotFound
		}
		logger.Error("card repository update failed", err, logger.Fields{
			"cardId": cardID,
		})
		return domain.Card{}, fmt.Errorf("update card: %w", err)
	}

	return scanCard(r.db.QueryRowContext(ctx, selectCard+` WHERE c.id = $1`, cardID))
}

func scanCard(row *sql.Row) (domain.Card, error) {
	var card domain.Card
	if err := row.Scan(
		&card.ID,
		&card.AccountID,
		&card.LastFour,
		&card.NumberHash,
		&card.CardType,
		&card.Status,
		&card.ExpiryMonth,
		&card.ExpiryYear,
		&card.DailyLimitMinor,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, domain.ErrRecordNotFound
		}
		return domain.Card{}, fmt.Errorf("scan card: %w", err)
	}
	return card, nil
}
