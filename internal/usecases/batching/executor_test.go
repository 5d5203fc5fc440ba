package batching

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

func TestExecutor_Run(t *testing.T) {
	executor := NewExecutor(4)

	result := executor.Run(context.Background(), []string{"a", "b", "c", "d"}, func(_ context.Context, id string) error {
		if id == "b" {
			return domain.NewErrorWithID(domain.ErrNotFound, apiErrors.ErrSaleNotFound, id, "venda não encontrada")
		}
		if id == "d" {
			return errors.New("falha de rede")
		}
		return nil
	})

	assert.Equal(t, []string{"a", "c"}, result.Succeeded)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, domain.BatchFailure{ID: "b", Message: "venda não encontrada"}, result.Failures[0])
	assert.Equal(t, domain.BatchFailure{ID: "d", Message: "falha de rede"}, result.Failures[1])
	assert.Equal(t, []string{"b", "d"}, result.FailedIDs())
	assert.True(t, result.HasFailures())
}

func TestExecutor_Run_RemoveDuplicados(t *testing.T) {
	executor := NewExecutor(2)
	var calls int32

	result := executor.Run(context.Background(), []string{"a", "a", " ", "b", "a"}, func(_ context.Context, _ string) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	assert.Equal(t, int32(2), calls)
	assert.Equal(t, []string{"a", "b"}, result.Succeeded)
	assert.False(t, result.HasFailures())
}

func TestExecutor_Run_RecuperaPanic(t *testing.T) {
	executor := NewExecutor(1)

	result := executor.Run(context.Background(), []string{"a", "b"}, func(_ context.Context, id string) error {
		if id == "a" {
			panic("boom")
		}
		return nil
	})

	assert.Equal(t, []string{"b"}, result.Succeeded)
	assert.Equal(t, []string{"a"}, result.FailedIDs())
}

func TestExecutor_Run_LimitaConcorrencia(t *testing.T) {
	executor := NewExecutor(2)
	var running, peak int32

	executor.Run(context.Background(), []string{"1", "2", "3", "4", "5", "6"}, func(_ context.Context, _ string) error {
		current := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if current <= old || atomic.CompareAndSwapInt32(&peak, old, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestExecutor_Run_ContextoCancelado(t *testing.T) {
	executor := NewExecutor(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := executor.Run(ctx, []string{"a", "b"}, func(_ context.Context, _ string) error {
		return nil
	})

	assert.Empty(t, result.Succeeded)
	assert.Equal(t, []string{"a", "b"}, result.FailedIDs())
}
