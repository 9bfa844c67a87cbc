package counters

import (
	"context"
	"fmt"
	"patholab-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCounterRepository struct {
	sequences map[string]int
}

func newFakeCounterRepository() *fakeCounterRepository {
	return &fakeCounterRepository{sequences: make(map[string]int)}
}

func (f *fakeCounterRepository) key(name string, year int) string {
	return fmt.Sprintf("%s/%d", name, year)
}

func (f *fakeCounterRepository) NextSequence(ctx context.Context, name string, year int) (int, error) {
	k := f.key(name, year)
	f.sequences[k]++
	return f.sequences[k], nil
}

func (f *fakeCounterRepository) CurrentSequence(ctx context.Context, name string, year int) (int, error) {
	return f.sequences[f.key(name, year)], nil
}

func TestNextCaseCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Formats As Year Dash Five Digits", func(t *testing.T) {
		repo := newFakeCounterRepository()
		service := NewCounterService(repo)

		code, err := service.NextCaseCode(ctx, 2025)
		assert.NoError(t, err)
		assert.Equal(t, "2025-00001", code)
	})

	t.Run("Sequence Is Strictly Increasing", func(t *testing.T) {
		repo := newFakeCounterRepository()
		service := NewCounterService(repo)

		first, err := service.NextCaseCode(ctx, 2025)
		assert.NoError(t, err)
		second, err := service.NextCaseCode(ctx, 2025)
		assert.NoError(t, err)

		assert.Equal(t, "2025-00001", first)
		assert.Equal(t, "2025-00002", second)
	})

	t.Run("Capacity Overflow Is Rejected", func(t *testing.T) {
		repo := newFakeCounterRepository()
		repo.sequences[repo.key(constvars.CounterCaseConsecutive, 2025)] = constvars.CaseConsecutiveMax
		service := NewCounterService(repo)

		_, err := service.NextCaseCode(ctx, 2025)
		assert.Error(t, err, "the sequence past 99999 must not produce a code")
	})
}

func TestPeekCaseNumber(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCounterRepository()
	service := NewCounterService(repo)

	next, err := service.PeekCaseNumber(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 1, next, "a fresh year peeks at one")

	_, err = service.NextCaseCode(ctx, 2025)
	assert.NoError(t, err)

	next, err = service.PeekCaseNumber(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestNextApprovalCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Formats With AP Prefix", func(t *testing.T) {
		repo := newFakeCounterRepository()
		service := NewCounterService(repo)

		code, err := service.NextApprovalCode(ctx, 2025)
		assert.NoError(t, err)
		assert.Equal(t, "AP-2025-001", code)
	})

	t.Run("Capacity Is Three Digits", func(t *testing.T) {
		repo := newFakeCounterRepository()
		repo.sequences[repo.key(constvars.CounterApprovalConsecutive, 2025)] = constvars.ApprovalConsecutiveMax
		service := NewCounterService(repo)

		_, err := service.NextApprovalCode(ctx, 2025)
		assert.Error(t, err)
	})
}

func TestNextUnreadCaseCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCounterRepository()
	service := NewCounterService(repo)

	code, err := service.NextUnreadCaseCode(ctx, 2025)
	assert.NoError(t, err)
	assert.Equal(t, "TC2025-00001", code)
}
