package finance

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
)

type Service interface {
	RecordPayment(ctx context.Context, memberID int, req RecordPaymentRequest) (*Transaction, error)
	Statement(ctx context.Context, memberID int) (*Statement, error)
}

type MemberLookup interface {
	GetByID(ctx context.Context, id int) (*member.Member, error)
}

type service struct {
	tx      db.TxRunner
	repo    Repository
	members MemberLookup
	now     func() time.Time
}

func NewService(tx db.TxRunner, repo Repository, members MemberLookup, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:      tx,
		repo:    repo,
		members: members,
		now:     now,
	}
}

// ParseAmount accepts a positive decimal with at most two fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperror.Validation("amount %q is not a number", s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperror.Validation("amount must be positive")
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, apperror.Validation("amount %s has more than two decimal places", amount)
	}
	return amount, nil
}

func (s *service) RecordPayment(ctx context.Context, memberID int, req RecordPaymentRequest) (*Transaction, error) {
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	date := calendar.Day(s.now())
	if req.TransactionDate != "" {
		if date, err = calendar.ParseDate(req.TransactionDate); err != nil {
			return nil, err
		}
	}

	t := &Transaction{
		MemberID:        memberID,
		Amount:          amount,
		Description:     strings.TrimSpace(req.Description),
		TransactionDate: date,
	}

	err = s.tx.WithTx(ctx, func(q sqlx.ExtContext) error {
		if err := s.repo.LockMember(ctx, q, memberID); err != nil {
			return err
		}
		if err := s.repo.Insert(ctx, q, t); err != nil {
			return err
		}
		if req.MarkPaid {
			return s.repo.MarkMemberPaid(ctx, q, memberID)
		}
		return nil
	})
	if err != nil {
		logger.Error("payment not recorded",
			"member_id", memberID,
			"amount", amount.StringFixed(2),
			"error", err.Error(),
		)
		return nil, err
	}

	logger.Info("payment recorded",
		"member_id", memberID,
		"transaction_id", t.ID,
		"amount", amount.StringFixed(2),
		"mark_paid", req.MarkPaid,
	)
	return t, nil
}

func (s *service) Statement(ctx context.Context, memberID int) (*Statement, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	txs, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.TotalByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return &Statement{
		MemberID:     memberID,
		TotalPaid:    total,
		Transactions: txs,
	}, nil
}
