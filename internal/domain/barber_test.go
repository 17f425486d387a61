package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBarberStatus(t *testing.T) {
	tests := []struct {
		name    string
		signals BarberSignals
		want    BarberStatus
	}{
		{
			"not clocked in",
			BarberSignals{IsAvailable: true, ClockedIn: false},
			BarberClockedOut,
		},
		{
			"busy overrides break",
			BarberSignals{IsAvailable: true, ClockedIn: true, OnBreak: true, InProgressOrders: 1},
			BarberBusy,
		},
		{
			"on break",
			BarberSignals{IsAvailable: true, ClockedIn: true, OnBreak: true},
			BarberOnBreak,
		},
		{
			"available",
			BarberSignals{IsAvailable: true, ClockedIn: true},
			BarberAvailable,
		},
		{
			// На смене, но с выключенным флагом доступности: клиентов
			// не принимает, сводится к clocked_out
			"clocked in but not available",
			BarberSignals{IsAvailable: false, ClockedIn: true},
			BarberClockedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveBarberStatus(tt.signals))
		})
	}
}
