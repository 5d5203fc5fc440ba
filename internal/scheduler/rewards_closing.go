// Package scheduler contém as rotinas agendadas do motor de vendas
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/referring"
	"github.com/vfg2006/dealership-sales-api/pkg/utils"
)

type RewardsClosingConfig struct {
	CronSchedule string
	Enabled      bool
}

// RewardsClosingService fecha as premiações do mês anterior por comissionado
type RewardsClosingService struct {
	scheduler        *gocron.Scheduler
	rewardRepository repository.RewardRepository
	calculator       *pricing.Calculator
	config           RewardsClosingConfig
	now              func() time.Time

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastMonth           string
	lastPayouts         int
	lastError           string
}

func NewRewardsClosingService(
	rewardRepository repository.RewardRepository,
	calculator *pricing.Calculator,
	cfg *config.Config,
) *RewardsClosingService {
	closingConfig := RewardsClosingConfig{
		CronSchedule: cfg.RewardsClosing.CronSchedule, // Default: 05h do dia 1
		Enabled:      cfg.RewardsClosing.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": closingConfig.CronSchedule,
		"enabled":       closingConfig.Enabled,
	}).Info("Configuração do fechamento de premiações carregada")

	return &RewardsClosingService{
		scheduler:        gocron.NewScheduler(time.Local),
		rewardRepository: rewardRepository,
		calculator:       calculator,
		config:           closingConfig,
		now:              time.Now,
	}
}

func (s *RewardsClosingService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de fechamento de premiações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de fechamento de premiações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.CloseRewards(ctx); err != nil {
			logrus.WithError(err).Error("Erro no fechamento de premiações")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar fechamento de premiações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de fechamento de premiações")
		s.scheduler.Stop()
	}()

	return nil
}

// CloseRewards grava um fechamento por comissionado para o mês anterior.
// Reexecutar o mesmo mês sobrescreve os valores gravados.
func (s *RewardsClosingService) CloseRewards(ctx context.Context) ([]*domain.CommissionerPayout, error) {
	if !s.begin() {
		logrus.Warn("Fechamento de premiações já está em execução")
		return nil, nil
	}

	start, end, month := utils.PreviousMonth(s.now())
	payouts, err := s.closeMonth(ctx, start, end, month)
	s.finish(month, len(payouts), err)
	return payouts, err
}

func (s *RewardsClosingService) closeMonth(ctx context.Context, start, end time.Time, month string) ([]*domain.CommissionerPayout, error) {
	logrus.WithFields(logrus.Fields{
		"month":      month,
		"start_date": start.Format(time.DateOnly),
		"end_date":   end.Format(time.DateOnly),
	}).Info("Iniciando fechamento de premiações")

	rewards, err := referring.CollectRewards(ctx, s.rewardRepository, s.calculator, domain.RewardFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	payouts := s.calculator.Payouts(rewards, month)
	if len(payouts) == 0 {
		logrus.WithField("month", month).Info("Nenhuma indicação no período, nada a fechar")
		return payouts, nil
	}

	closedAt := s.now()
	for _, payout := range payouts {
		payout.ClosedAt = closedAt
	}

	if err := s.rewardRepository.SavePayouts(ctx, payouts); err != nil {
		logrus.WithError(err).WithField("month", month).Error("Erro ao gravar fechamento de premiações")
		return nil, fmt.Errorf("erro ao gravar fechamento de %s: %w", month, err)
	}

	logrus.WithFields(logrus.Fields{
		"month":         month,
		"commissioners": len(payouts),
	}).Info("Fechamento de premiações concluído")

	return payouts, nil
}

func (s *RewardsClosingService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

func (s *RewardsClosingService) finish(month string, payouts int, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastMonth = month
	s.lastPayouts = payouts
	s.lastError = ""
	if err != nil {
		s.lastError = domain.ReasonOf(err)
	}
}

// TriggerManualSync dispara o fechamento fora do agendamento
func (s *RewardsClosingService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Fechamento de premiações já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando fechamento manual de premiações")
	go func() {
		if _, err := s.CloseRewards(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no fechamento manual de premiações")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *RewardsClosingService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_month":             s.lastMonth,
		"last_payouts":           s.lastPayouts,
		"last_error":             s.lastError,
	}
}
