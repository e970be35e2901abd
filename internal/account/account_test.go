package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
)

func TestLastFour(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "8821", want: "8821", wantOK: true},
		{in: "1234 5678 9012 3456", want: "3456", wantOK: true},
		{in: "12-34", want: "1234", wantOK: true},
		{in: "123", wantOK: false},
		{in: "abcd", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := account.LastFour(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "**** **** **** 4410", account.Mask("4410"))
}

func TestTotalBalanceAndFind(t *testing.T) {
	a := &account.Account{ID: uuid.New(), Balance: 100}
	b := &account.Account{ID: uuid.New(), Balance: 250}

	assert.Equal(t, int64(350), account.TotalBalance([]*account.Account{a, b}))
	assert.Same(t, b, account.Find([]*account.Account{a, b}, b.ID))
	assert.Nil(t, account.Find([]*account.Account{a}, b.ID))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any(), "u1").Return([]*account.Account{{ID: uuid.New()}}, nil)
	repo.EXPECT().ListAccounts(gomock.Any(), "u2").Return(nil, errors.New("db error"))

	svc := account.NewService(repo)

	got, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.List(context.Background(), "u2")
	assert.Error(t, err)
}
