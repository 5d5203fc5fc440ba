package batching

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

// ItemFunc processa um único id do lote
type ItemFunc func(ctx context.Context, id string) error

// Executor roda uma operação por id com concorrência limitada.
// A falha de um item nunca interrompe os demais.
type Executor struct {
	maxConcurrency int
}

func NewExecutor(maxConcurrency int) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Executor{maxConcurrency: maxConcurrency}
}

// Run executa fn para cada id distinto e devolve o resultado na ordem de entrada
func (e *Executor) Run(ctx context.Context, ids []string, fn ItemFunc) domain.BatchResult {
	unique := Dedupe(ids)
	errs := make([]error, len(unique))

	semaphore := make(chan struct{}, e.maxConcurrency)
	var wg sync.WaitGroup

	for i, id := range unique {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = runItem(ctx, id, fn)
		}(i, id)
	}

	wg.Wait()

	result := domain.BatchResult{
		Succeeded: make([]string, 0, len(unique)),
		Failures:  make([]domain.BatchFailure, 0),
	}
	for i, id := range unique {
		if errs[i] != nil {
			result.Failures = append(result.Failures, domain.BatchFailure{ID: id, Message: domain.ReasonOf(errs[i])})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	logrus.WithFields(logrus.Fields{
		"batch_size": len(unique),
		"succeeded":  len(result.Succeeded),
		"failed":     len(result.Failures),
	}).Debug("Lote processado")

	return result
}

func runItem(ctx context.Context, id string, fn ItemFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("id", id).Errorf("Panic ao processar item do lote: %v", r)
			err = fmt.Errorf("erro interno ao processar %s", id)
		}
	}()
	return fn(ctx, id)
}

// Dedupe remove ids vazios e repetidos mantendo a primeira ocorrência
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
