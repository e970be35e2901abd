package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

func TestService_List(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		wantOrder []string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "SortedMostRecentFirst",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), "u1", transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						{Description: "oldest", CreatedAt: base},
						{Description: "newest", CreatedAt: base.Add(2 * time.Hour)},
						{Description: "middle", CreatedAt: base.Add(time.Hour)},
					}, nil)
			},
			wantOrder: []string{"newest", "middle", "oldest"},
		},
		{
			name: "TiesKeepDeliveredOrder",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), "u1", transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						{Description: "a", CreatedAt: base},
						{Description: "b", CreatedAt: base},
					}, nil)
			},
			wantOrder: []string{"a", "b"},
		},
		{
			name: "Error",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), "u1", transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), "u1", transaction.ListFilter{})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			var order []string
			for _, tx := range got {
				order = append(order, tx.Description)
			}

			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), "u1", id).Return(nil, transaction.ErrNotFound)

	svc := transaction.NewService(repo)
	_, err := svc.Get(context.Background(), "u1", id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}
