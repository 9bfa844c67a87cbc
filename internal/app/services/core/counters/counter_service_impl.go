package counters

import (
	"context"
	"fmt"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
)

type counterService struct {
	CounterRepository contracts.CounterRepository
}

func NewCounterService(counterRepository contracts.CounterRepository) contracts.CounterService {
	return &counterService{CounterRepository: counterRepository}
}

// NextCaseCode issues the next case consecutive for the year, formatted as
// YYYY-NNNNN. A sequence past the five-digit capacity is rejected and the
// burned number is never reused.
func (s *counterService) NextCaseCode(ctx context.Context, year int) (string, error) {
	seq, err := s.CounterRepository.NextSequence(ctx, constvars.CounterCaseConsecutive, year)
	if err != nil {
		return "", err
	}
	if seq > constvars.CaseConsecutiveMax {
		return "", exceptions.ErrCounterCapacityExceeded(constvars.CounterCaseConsecutive, year)
	}
	return fmt.Sprintf("%d-%05d", year, seq), nil
}

func (s *counterService) PeekCaseNumber(ctx context.Context, year int) (int, error) {
	seq, err := s.CounterRepository.CurrentSequence(ctx, constvars.CounterCaseConsecutive, year)
	if err != nil {
		return 0, err
	}
	return seq + 1, nil
}

func (s *counterService) NextApprovalCode(ctx context.Context, year int) (string, error) {
	seq, err := s.CounterRepository.NextSequence(ctx, constvars.CounterApprovalConsecutive, year)
	if err != nil {
		return "", err
	}
	if seq > constvars.ApprovalConsecutiveMax {
		return "", exceptions.ErrCounterCapacityExceeded(constvars.CounterApprovalConsecutive, year)
	}
	return fmt.Sprintf("AP-%d-%03d", year, seq), nil
}

func (s *counterService) NextUnreadCaseCode(ctx context.Context, year int) (string, error) {
	seq, err := s.CounterRepository.NextSequence(ctx, constvars.CounterUnreadCaseConsecutive, year)
	if err != nil {
		return "", err
	}
	if seq > constvars.CaseConsecutiveMax {
		return "", exceptions.ErrCounterCapacityExceeded(constvars.CounterUnreadCaseConsecutive, year)
	}
	return fmt.Sprintf("TC%d-%05d", year, seq), nil
}
