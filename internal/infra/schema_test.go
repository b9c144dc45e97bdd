//go:build unit

package infra_test

import (
	"fmt"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/usecase/shared"
)

// The CHECK constraints in the schema must accept every value the domain
// enums can produce, or a valid write turns into a constraint violation
// at the database.
func TestSchemaChecksCoverDomainEnums(t *testing.T) {
	schema, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)

	checkList := func(column string) string {
		re := regexp.MustCompile(fmt.Sprintf(`CHECK \(%s IN \(([^)]+)\)\)`, column))
		m := re.FindSubmatch(schema)
		require.NotNil(t, m, "no CHECK ... IN constraint for %s", column)
		return string(m[1])
	}

	t.Run("users.verification_status", func(t *testing.T) {
		list := checkList("verification_status")
		for _, v := range []user.VerificationStatus{
			user.VerificationUnverified,
			user.VerificationPending,
			user.VerificationVerified,
			user.VerificationRejected,
			user.VerificationSuspended,
		} {
			assert.Contains(t, list, "'"+string(v)+"'")
		}
	})

	t.Run("users.role", func(t *testing.T) {
		list := checkList("role")
		for _, v := range []user.Role{user.RoleStudent, user.RoleAdmin} {
			assert.Contains(t, list, "'"+string(v)+"'")
		}
	})

	t.Run("bookings.status", func(t *testing.T) {
		list := checkList("status")
		for _, v := range []booking.Status{
			booking.StatusInitiated,
			booking.StatusPending,
			booking.StatusActive,
			booking.StatusCompleted,
			booking.StatusRejected,
			booking.StatusCanceled,
			booking.StatusExpired,
		} {
			assert.Contains(t, list, "'"+string(v)+"'")
		}
	})

	t.Run("scheduled_tasks.kind", func(t *testing.T) {
		list := checkList("kind")
		for _, v := range []shared.JobKind{shared.JobKindReminder, shared.JobKindExpire} {
			assert.Contains(t, list, "'"+string(v)+"'")
		}
	})
}
