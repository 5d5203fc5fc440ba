package referring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/pricing"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var (
	admin   = domain.AuthContext{UserID: "u-admin", Role: domain.RoleAdmin}
	manager = domain.AuthContext{UserID: "u-manager", Role: domain.RoleManager, CompanyID: "c1"}
	seller  = domain.AuthContext{UserID: "u-seller", Role: domain.RoleSeller, CompanyID: "c1", UnitID: "un1"}
)

type fixture struct {
	commissionerRepo *mocks.MockCommissionerRepository
	serviceSaleRepo  *mocks.MockServiceSaleRepository
	rewardRepo       *mocks.MockRewardRepository
	service          ReferralService
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		commissionerRepo: mocks.NewMockCommissionerRepository(ctrl),
		serviceSaleRepo:  mocks.NewMockServiceSaleRepository(ctrl),
		rewardRepo:       mocks.NewMockRewardRepository(ctrl),
	}
	f.service = NewService(f.commissionerRepo, f.serviceSaleRepo, f.rewardRepo, pricing.NewCalculator())
	return f
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr), "esperava *domain.Error, recebeu %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func ptr(s string) *string {
	return &s
}

func TestService_AssignReferral(t *testing.T) {
	enabled := &domain.Commissioner{ID: "cm-1", CompanyID: "c1", Name: "Carlos", Enabled: true}

	tests := []struct {
		name     string
		auth     domain.AuthContext
		request  domain.AssignReferralRequest
		setup    func(f *fixture)
		wantCode string
	}{
		{
			name:    "atribui linhas de vendas diferentes",
			auth:    manager,
			request: domain.AssignReferralRequest{CommissionerID: "cm-1", ServiceSaleIDs: []string{"l1", "l2", "l1"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-1").Return(enabled, nil)
				f.serviceSaleRepo.EXPECT().GetByIDs(gomock.Any(), []string{"l1", "l2"}).Return([]*domain.ServiceSale{
					{ID: "l1", SaleID: "s1", CompanyID: "c1"},
					{ID: "l2", SaleID: "s2", CompanyID: "c1"},
				}, nil)
				f.serviceSaleRepo.EXPECT().AssignCommissioner(gomock.Any(), "cm-1", []string{"l1", "l2"}).Return(nil)
			},
		},
		{
			name:     "seleção vazia",
			auth:     admin,
			request:  domain.AssignReferralRequest{CommissionerID: "cm-1"},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrEmptySelection,
		},
		{
			name:     "vendedor não indica",
			auth:     seller,
			request:  domain.AssignReferralRequest{CommissionerID: "cm-1", ServiceSaleIDs: []string{"l1"}},
			setup:    func(f *fixture) {},
			wantCode: apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:    "comissionado inexistente",
			auth:    admin,
			request: domain.AssignReferralRequest{CommissionerID: "cm-x", ServiceSaleIDs: []string{"l1"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-x").Return(nil, nil)
			},
			wantCode: apiErrors.ErrCommissionerNotFound,
		},
		{
			name:    "comissionado desabilitado",
			auth:    admin,
			request: domain.AssignReferralRequest{CommissionerID: "cm-2", ServiceSaleIDs: []string{"l1"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-2").
					Return(&domain.Commissioner{ID: "cm-2", CompanyID: "c1", Enabled: false}, nil)
			},
			wantCode: apiErrors.ErrCommissionerDisabled,
		},
		{
			name:    "comissionado de outra empresa para o gerente",
			auth:    manager,
			request: domain.AssignReferralRequest{CommissionerID: "cm-3", ServiceSaleIDs: []string{"l1"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-3").
					Return(&domain.Commissioner{ID: "cm-3", CompanyID: "c2", Enabled: true}, nil)
			},
			wantCode: apiErrors.ErrOutOfScope,
		},
		{
			name:    "linha inexistente",
			auth:    admin,
			request: domain.AssignReferralRequest{CommissionerID: "cm-1", ServiceSaleIDs: []string{"l1", "l9"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-1").Return(enabled, nil)
				f.serviceSaleRepo.EXPECT().GetByIDs(gomock.Any(), []string{"l1", "l9"}).
					Return([]*domain.ServiceSale{{ID: "l1", CompanyID: "c1"}}, nil)
			},
			wantCode: apiErrors.ErrServiceSaleNotFound,
		},
		{
			name:    "linha de outra empresa",
			auth:    admin,
			request: domain.AssignReferralRequest{CommissionerID: "cm-1", ServiceSaleIDs: []string{"l5"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-1").Return(enabled, nil)
				f.serviceSaleRepo.EXPECT().GetByIDs(gomock.Any(), []string{"l5"}).
					Return([]*domain.ServiceSale{{ID: "l5", CompanyID: "c2"}}, nil)
			},
			wantCode: apiErrors.ErrCrossCompany,
		},
		{
			name:    "falha ao gravar",
			auth:    admin,
			request: domain.AssignReferralRequest{CommissionerID: "cm-1", ServiceSaleIDs: []string{"l1"}},
			setup: func(f *fixture) {
				f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-1").Return(enabled, nil)
				f.serviceSaleRepo.EXPECT().GetByIDs(gomock.Any(), []string{"l1"}).
					Return([]*domain.ServiceSale{{ID: "l1", CompanyID: "c1"}}, nil)
				f.serviceSaleRepo.EXPECT().AssignCommissioner(gomock.Any(), "cm-1", []string{"l1"}).
					Return(errors.New("deadlock"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.service.AssignReferral(context.Background(), tt.auth, tt.request)
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestService_CreateCommissioner(t *testing.T) {
	t.Run("gerente cria na própria empresa", func(t *testing.T) {
		f := newFixture(t)

		f.commissionerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Commissioner) error {
			assert.Equal(t, "c1", c.CompanyID)
			assert.True(t, c.Enabled)
			assert.NotEmpty(t, c.ID)
			return nil
		})

		commissioner, err := f.service.CreateCommissioner(context.Background(), manager, domain.CreateCommissionerRequest{
			CompanyID:  "c2",
			Name:       " Ana ",
			PixKeyType: domain.PixKeyCPF,
			PixKey:     "529.982.247-25",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", commissioner.Name)
		assert.Equal(t, domain.PixKeyCPF, commissioner.PixKey.Type())
	})

	t.Run("chave pix incompatível com o tipo", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateCommissioner(context.Background(), admin, domain.CreateCommissionerRequest{
			CompanyID:  "c1",
			Name:       "Ana",
			PixKeyType: domain.PixKeyEmail,
			PixKey:     "11999998888",
		})
		assertCode(t, err, apiErrors.ErrInvalidPixKey)
	})

	t.Run("admin sem empresa", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateCommissioner(context.Background(), admin, domain.CreateCommissionerRequest{
			Name:       "Ana",
			PixKeyType: domain.PixKeyEmail,
			PixKey:     "ana@example.com",
		})
		assertCode(t, err, apiErrors.ErrMissingRequiredData)
	})
}

func TestService_SetCommissionerEnabled(t *testing.T) {
	f := newFixture(t)

	f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-1").
		Return(&domain.Commissioner{ID: "cm-1", CompanyID: "c1", Enabled: true}, nil)
	f.commissionerRepo.EXPECT().SetEnabled(gomock.Any(), "cm-1", false).Return(nil)

	require.NoError(t, f.service.SetCommissionerEnabled(context.Background(), manager, "cm-1", false))

	f.commissionerRepo.EXPECT().GetByID(gomock.Any(), "cm-2").
		Return(&domain.Commissioner{ID: "cm-2", CompanyID: "c1"}, nil)
	f.commissionerRepo.EXPECT().SetEnabled(gomock.Any(), "cm-2", true).Return(repository.ErrNoRowsAffected)

	err := f.service.SetCommissionerEnabled(context.Background(), admin, "cm-2", true)
	assertCode(t, err, apiErrors.ErrCommissionerNotFound)
}

func TestService_ListCommissioners(t *testing.T) {
	f := newFixture(t)

	f.commissionerRepo.EXPECT().List(gomock.Any(), "c1").Return([]*domain.Commissioner{{ID: "cm-1"}}, nil)
	f.commissionerRepo.EXPECT().List(gomock.Any(), "").Return([]*domain.Commissioner{{ID: "cm-1"}, {ID: "cm-9"}}, nil)

	got, err := f.service.ListCommissioners(context.Background(), manager, "c2")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = f.service.ListCommissioners(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_ListRewards(t *testing.T) {
	f := newFixture(t)

	sales := []*domain.Sale{
		{
			ID:        "s1",
			CompanyID: "c1",
			Status:    domain.SaleStatusCanceled,
			ServiceSales: []*domain.ServiceSale{
				{ID: "l1", CostValue: decimal.RequireFromString("45.50"), CompanyValue: decimal.NewFromInt(120), CommissionerID: ptr("cm-1")},
				{ID: "l2", CostValue: decimal.NewFromInt(10), CompanyValue: decimal.NewFromInt(30)},
			},
		},
		{
			ID:           "s2",
			CompanyID:    "c1",
			ServiceSales: []*domain.ServiceSale{{ID: "l3", CostValue: decimal.NewFromInt(1), CompanyValue: decimal.NewFromInt(2)}},
		},
	}

	f.rewardRepo.EXPECT().
		ListReferredSales(gomock.Any(), domain.RewardFilter{CompanyID: "c1"}).
		Return(sales, nil)

	rewards, err := f.service.ListRewards(context.Background(), manager, domain.RewardFilter{CompanyID: "c2"})
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, "s1", rewards[0].SaleID)
	assert.Equal(t, domain.SaleStatusCanceled, rewards[0].Status)
	assert.True(t, decimal.RequireFromString("74.50").Equal(rewards[0].Total))

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.service.ListRewards(context.Background(), admin, domain.RewardFilter{StartDate: &start, EndDate: &end})
	assertCode(t, err, apiErrors.ErrInvalidFormat)

	_, err = f.service.ListRewards(context.Background(), seller, domain.RewardFilter{})
	assertCode(t, err, apiErrors.ErrInsufficientPrivilege)
}
