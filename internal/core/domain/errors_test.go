package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapNotFound(t *testing.T) {
	for _, err := range []error{
		ErrMemberNotFound,
		ErrLoanNotFound,
		ErrPaymentNotFound,
		ErrSavingNotFound,
	} {
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestEntityErrorsStayDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrMemberNotFound, ErrLoanNotFound)
	assert.NotErrorIs(t, ErrInvalidInput, ErrNotFound)
}
