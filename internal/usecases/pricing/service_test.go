package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var (
	admin   = domain.AuthContext{UserID: "u-admin", Role: domain.RoleAdmin}
	manager = domain.AuthContext{UserID: "u-manager", Role: domain.RoleManager, CompanyID: "c1"}
)

func TestService_ComputeCostBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	service := NewService(catalogRepo, NewCalculator())

	tests := []struct {
		name     string
		auth     domain.AuthContext
		ids      []string
		setup    func()
		want     string
		wantCode string
	}{
		{
			name: "admin calcula custo",
			auth: admin,
			ids:  []string{"svc-1", "svc-2"},
			setup: func() {
				catalogRepo.EXPECT().
					GetServicesByIDs(gomock.Any(), []string{"svc-1", "svc-2"}).
					Return([]*domain.Service{
						{ID: "svc-2", CompanyID: "c1", CostPrice: price("130")},
						{ID: "svc-1", CompanyID: "c1", CostPrice: price("100")},
					}, nil)
			},
			want: "230",
		},
		{
			name:     "gerente não vê custo",
			auth:     manager,
			ids:      []string{"svc-1"},
			setup:    func() {},
			wantCode: apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:     "seleção vazia",
			auth:     admin,
			ids:      []string{},
			setup:    func() {},
			wantCode: apiErrors.ErrEmptySelection,
		},
		{
			name: "serviço inexistente",
			auth: admin,
			ids:  []string{"svc-1", "svc-x"},
			setup: func() {
				catalogRepo.EXPECT().
					GetServicesByIDs(gomock.Any(), []string{"svc-1", "svc-x"}).
					Return([]*domain.Service{{ID: "svc-1", CostPrice: price("100")}}, nil)
			},
			wantCode: apiErrors.ErrServiceNotFound,
		},
		{
			name: "falha do banco",
			auth: admin,
			ids:  []string{"svc-1"},
			setup: func() {
				catalogRepo.EXPECT().
					GetServicesByIDs(gomock.Any(), []string{"svc-1"}).
					Return(nil, errors.New("connection refused"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			got, err := service.ComputeCostBudget(context.Background(), tt.auth, tt.ids)
			if tt.wantCode != "" {
				var domainErr *domain.Error
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, tt.wantCode, domainErr.Code)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), got.String())
		})
	}
}

func TestService_ComputeCompanyBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	service := NewService(catalogRepo, NewCalculator())

	catalogRepo.EXPECT().
		GetServicesByIDs(gomock.Any(), []string{"svc-1", "svc-2"}).
		Return([]*domain.Service{
			{ID: "svc-1", CompanyID: "c1", CompanyPrice: price("150")},
			{ID: "svc-2", CompanyID: "c1", CompanyPrice: price("80")},
		}, nil)

	got, err := service.ComputeCompanyBudget(context.Background(), manager, []string{"svc-1", "svc-2", "svc-1"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(230).Equal(got))

	catalogRepo.EXPECT().
		GetServicesByIDs(gomock.Any(), []string{"svc-9"}).
		Return([]*domain.Service{{ID: "svc-9", CompanyID: "c2", CompanyPrice: price("10")}}, nil)

	_, err = service.ComputeCompanyBudget(context.Background(), manager, []string{"svc-9"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
