package store

import (
	"context"
	"errors"
	"testing"

	"wallet_admin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCard(t *testing.T) {
	s, mock := setupStoreTest(t)
	cols := []string{"id", "user_id", "provider_ref", "last4", "status"}
	mock.ExpectQuery("SELECT \\* FROM `virtual_cards` WHERE .*provider_ref = \\?").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "U1", "iss_42", "4242", "active"))
	mock.ExpectQuery("SELECT \\* FROM `virtual_cards`").WillReturnRows(sqlmock.NewRows(cols))

	card, err := s.GetCard(context.Background(), "iss_42")
	require.NoError(t, err)
	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, domain.CardActive, card.Status)

	_, err = s.GetCard(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetCard(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetCardStatus(t *testing.T) {
	s, mock := setupStoreTest(t)
	mock.ExpectExec("UPDATE `virtual_cards` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `virtual_cards` SET").WillReturnError(errors.New("lock wait timeout"))

	assert.NoError(t, s.SetCardStatus(context.Background(), "c1", domain.CardFrozen, "A1"))
	assert.ErrorIs(t, s.SetCardStatus(context.Background(), "c1", domain.CardFrozen, "A1"), domain.ErrBackend)
}
