package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/directory/domain/member"
	"github.com/helios-hq/helios/pkg/composables"
)

type MemberRepository interface {
	List(ctx context.Context, params member.FindParams) ([]member.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (member.Record, error)
	Count(ctx context.Context) (int64, error)
}

type MemberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) List(ctx context.Context, params member.FindParams) ([]member.Record, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]member.Record, error) {
		return s.repo.List(txCtx, params)
	})
}

func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (member.Record, error) {
	if id == uuid.Nil {
		return member.Record{}, newServiceError(http.StatusBadRequest, "DIR_INVALID_BODY", "member id is required", nil)
	}
	rec, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (member.Record, error) {
		return s.repo.GetByID(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return member.Record{}, newServiceError(http.StatusNotFound, "DIR_NOT_FOUND", "member not found", err)
		}
		return member.Record{}, err
	}
	return rec, nil
}

func (s *MemberService) Count(ctx context.Context) (int64, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}
