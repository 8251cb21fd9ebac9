package sessionpack

import (
	"context"
	"errors"
	"fmt"

	"ptslot/internal/logger"
	"ptslot/internal/metrics"
	"ptslot/internal/user"
)

var ErrMemberNotFound = errors.New("member not found")

// Members resolves the member a pack is issued to or checked in for.
type Members interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

type Service interface {
	MyPacks(ctx context.Context, userID int) (*PacksResponse, error)
	IssuePack(ctx context.Context, memberID int, req IssuePackRequest) (*SessionPack, error)
	CheckIn(ctx context.Context, memberID int) (*CheckinResponse, error)
}

type service struct {
	repo    Repository
	members Members
}

func NewService(repo Repository, members Members) Service {
	return &service{repo: repo, members: members}
}

func (s *service) MyPacks(ctx context.Context, userID int) (*PacksResponse, error) {
	packs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return summarize(packs), nil
}

// summarize expects packs oldest first.
func summarize(packs []SessionPack) *PacksResponse {
	resp := &PacksResponse{Packs: packs}
	for i := range packs {
		if packs[i].Exhausted() {
			continue
		}
		resp.Remaining += packs[i].Remaining()
		if resp.Active == nil {
			active := packs[i]
			resp.Active = &active
		}
	}
	return resp
}

func (s *service) IssuePack(ctx context.Context, memberID int, req IssuePackRequest) (*SessionPack, error) {
	if err := s.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}

	pack, err := s.repo.Create(ctx, memberID, req.TotalCount, req.ServiceCount)
	if err != nil {
		return nil, fmt.Errorf("issue pack: %w", err)
	}

	logger.Info("session pack issued", "member_id", memberID, "pack_id", pack.ID,
		"total", pack.TotalCount, "service", pack.ServiceCount)
	return pack, nil
}

func (s *service) CheckIn(ctx context.Context, memberID int) (*CheckinResponse, error) {
	if err := s.ensureMember(ctx, memberID); err != nil {
		return nil, err
	}

	pack, err := s.repo.ConsumeOldest(ctx, memberID)
	if err != nil {
		if errors.Is(err, ErrNoRemainingSessions) {
			metrics.RecordCheckin("no_sessions")
			return nil, err
		}
		metrics.RecordCheckin("failed")
		return nil, fmt.Errorf("check in: %w", err)
	}
	metrics.RecordCheckin("consumed")

	packs, err := s.repo.ListForUser(ctx, memberID)
	if err != nil {
		// The session is already consumed; report what the pack itself knows.
		logger.Warn("failed to reload packs after check-in", "member_id", memberID, "error", err)
		return &CheckinResponse{Pack: *pack, Remaining: pack.Remaining()}, nil
	}

	logger.Info("member checked in", "member_id", memberID, "pack_id", pack.ID)
	return &CheckinResponse{Pack: *pack, Remaining: summarize(packs).Remaining}, nil
}

func (s *service) ensureMember(ctx context.Context, memberID int) error {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}
