package appointment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appointment "github.com/glowbook/artist-scheduler/internal/domain/appointment"
	"github.com/glowbook/artist-scheduler/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to appointment.Status }{
		{appointment.StatusPending, appointment.StatusConfirmed},
		{appointment.StatusPending, appointment.StatusCancelled},
		{appointment.StatusConfirmed, appointment.StatusCompleted},
		{appointment.StatusConfirmed, appointment.StatusCancelled},
	}
	for _, tr := range allowed {
		assert.NoError(t, appointment.CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to appointment.Status }{
		{appointment.StatusPending, appointment.StatusCompleted},
		{appointment.StatusCompleted, appointment.StatusConfirmed},
		{appointment.StatusCompleted, appointment.StatusCancelled},
		{appointment.StatusCancelled, appointment.StatusPending},
		{appointment.StatusCancelled, appointment.StatusConfirmed},
		{appointment.StatusCancelled, appointment.StatusCompleted},
	}
	for _, tr := range denied {
		err := appointment.CanTransition(tr.from, tr.to)
		assert.Error(t, err, "%s -> %s", tr.from, tr.to)
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	}
}

func TestCanTransitionSameStatusIsNoop(t *testing.T) {
	for _, s := range []appointment.Status{
		appointment.StatusPending,
		appointment.StatusConfirmed,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
	} {
		assert.NoError(t, appointment.CanTransition(s, s))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, appointment.StatusPending.IsTerminal())
	assert.False(t, appointment.StatusConfirmed.IsTerminal())
	assert.True(t, appointment.StatusCompleted.IsTerminal())
	assert.True(t, appointment.StatusCancelled.IsTerminal())
}

func TestNonTerminalStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "confirmed"}, appointment.NonTerminalStatuses())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, appointment.ValidStatus("pending"))
	assert.True(t, appointment.ValidStatus("cancelled"))
	assert.False(t, appointment.ValidStatus("canceled"))
	assert.False(t, appointment.ValidStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, appointment.ValidPaymentStatus("paid"))
	assert.True(t, appointment.ValidPaymentStatus("refunded"))
	assert.False(t, appointment.ValidPaymentStatus("chargeback"))
}
