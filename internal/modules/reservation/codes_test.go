package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewReservationCode_Format(t *testing.T) {
	now := time.Date(2027, 6, 15, 10, 0, 0, 0, time.UTC)
	code := newReservationCode(now)

	assert.Len(t, code, 15)
	assert.Regexp(t, `^RES20270615\d{4}$`, code)
}

func TestNewConfirmationCode_Format(t *testing.T) {
	code := newConfirmationCode()
	assert.Len(t, code, confirmationCodeLen)
	assert.Regexp(t, `^[0-9A-F]{12}$`, code)

	// two draws should not collide
	assert.NotEqual(t, code, newConfirmationCode())
}

func TestGenerateCodes_RetriesOnCollision(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("CodeExists", mock.Anything, mock.Anything).Return(true, nil).Twice()
	repo.On("CodeExists", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("ConfirmationCodeExists", mock.Anything, mock.Anything).Return(false, nil)

	service := newTestService(repo, nil, nil, nil)

	code, confirmation, err := service.generateCodes(context.Background(), time.Now().UTC())
	assert.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.NotEmpty(t, confirmation)
	repo.AssertNumberOfCalls(t, "CodeExists", 3)
}

func TestGenerateCodes_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("CodeExists", mock.Anything, mock.Anything).Return(true, nil)

	service := newTestService(repo, nil, nil, nil)

	_, _, err := service.generateCodes(context.Background(), time.Now().UTC())
	assert.ErrorIs(t, err, ErrCodeCollision)
}
