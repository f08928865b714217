package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func code(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	return appErr.Code
}

func TestPhoneNormalization(t *testing.T) {
	got, err := Phone("555-123-4567")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", got)

	got, err = Phone("5551234567")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", got)
}

func TestPhoneRejectsOtherShapes(t *testing.T) {
	for _, in := range []string{"", "555 123 4567", "555-1234-567", "55512345678", "(555)123-4567", "abc-def-ghij"} {
		_, err := Phone(in)
		require.Error(t, err, in)
		assert.Equal(t, appErrors.ErrBadPhone.Code, code(t, err), in)
	}
}

func TestEmailNormalization(t *testing.T) {
	got, err := Email("Ada.Lovelace@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "ada.lovelace@example.com", got)
}

func TestEmailRejectsBadAddresses(t *testing.T) {
	for _, in := range []string{"", "plain", "a@b", "a@@b.com", "a@b.toolongtld", "@example.com", "a b@example.com"} {
		_, err := Email(in)
		require.Error(t, err, in)
		assert.Equal(t, appErrors.ErrBadEmail.Code, code(t, err), in)
	}
}

func TestDaysCanonicalization(t *testing.T) {
	got, err := Days([]interface{}{"monday", "WEDNESDAY"}, weekdays)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Wednesday"}, got)
}

func TestDaysRejectsScalar(t *testing.T) {
	_, err := Days("Monday", weekdays)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDayList.Code, code(t, err))
}

func TestDaysRejectsEmptyList(t *testing.T) {
	_, err := Days([]interface{}{}, weekdays)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDayList.Code, code(t, err))
}

func TestDaysRejectsNonStringMember(t *testing.T) {
	_, err := Days([]interface{}{"Monday", 2}, weekdays)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDayList.Code, code(t, err))
}

func TestDaysRejectsUnknownDay(t *testing.T) {
	_, err := Days([]interface{}{"Saturday"}, weekdays)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBadDay.Code, code(t, err))
}

func TestDaysRejectsDuplicateCaseInsensitive(t *testing.T) {
	_, err := Days([]interface{}{"Monday", "monday"}, weekdays)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDupDay.Code, code(t, err))
}
