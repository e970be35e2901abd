package categorize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

func TestService_Categorize(t *testing.T) {
	type testCase struct {
		name      string
		desc      string
		typ       transaction.Type
		setupMock func(m *categorize.MockRepository)
		want      string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Match",
			desc: "UPI-SWIGGY-BANGALORE",
			typ:  transaction.TypeExpense,
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "u1", "UPI-SWIGGY-BANGALORE").Return("Food", nil)
			},
			want: "Food",
		},
		{
			name: "FallbackExpense",
			desc: "POS 4411 UNKNOWN",
			typ:  transaction.TypeExpense,
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "u1", gomock.Any()).Return("", nil)
			},
			want: "Other Expense",
		},
		{
			name: "FallbackIncome",
			desc: "NEFT CR",
			typ:  transaction.TypeIncome,
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "u1", gomock.Any()).Return("", nil)
			},
			want: "Other Income",
		},
		{
			name: "BlankDescriptionSkipsStore",
			desc: "   ",
			typ:  transaction.TypeIncome,
			want: "Other Income",
		},
		{
			name: "RepoError",
			desc: "ATM WDL",
			typ:  transaction.TypeExpense,
			setupMock: func(m *categorize.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "u1", gomock.Any()).Return("", errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := categorize.NewService(repo).Categorize(context.Background(), "u1", tt.desc, tt.typ)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	repo.EXPECT().CreateMapping(gomock.Any(), "u1", "SWIGGY", "Food").Return(nil)

	svc := categorize.NewService(repo)

	require.NoError(t, svc.Learn(context.Background(), "u1", "  SWIGGY ", " Food"))
	assert.ErrorIs(t, svc.Learn(context.Background(), "u1", "", "Food"), categorize.ErrEmptyMapping)
	assert.ErrorIs(t, svc.Learn(context.Background(), "u1", "SWIGGY", " "), categorize.ErrEmptyMapping)
}

func TestMemory_LongestPatternWins(t *testing.T) {
	ctx := context.Background()
	svc := categorize.NewService(categorize.NewMemory())

	require.NoError(t, svc.Learn(ctx, "u1", "UPI", "Transport"))
	require.NoError(t, svc.Learn(ctx, "u1", "upi-swiggy", "Food"))
	require.NoError(t, svc.Learn(ctx, "u2", "UPI-SWIGGY-BLR", "Travel"))

	got, err := svc.Suggest(ctx, "u1", "UPI-SWIGGY-BLR-1234")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)

	got, err = svc.Suggest(ctx, "u1", "upi-ola")
	require.NoError(t, err)
	assert.Equal(t, "Transport", got)

	got, err = svc.Suggest(ctx, "u1", "NEFT salary")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.Learn(ctx, "u1", "UPI", "Bills"))

	got, err = svc.Suggest(ctx, "u1", "upi-ola")
	require.NoError(t, err)
	assert.Equal(t, "Bills", got)
}
