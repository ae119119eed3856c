package workforce

import (
	"testing"
	"time"

	"github.com/branchpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployee(t *testing.T, name string, rate string) *Employee {
	t.Helper()
	e, err := NewEmployee("downtown", name, RoleBarista, decimal.RequireFromString(rate))
	require.NoError(t, err)
	return e
}

func TestTimeEntryClockCycle(t *testing.T) {
	start := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	t.Run("open shift starts clocked in", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		assert.Equal(t, ClockStatusClockedIn, entry.Status)
		assert.True(t, entry.IsOpen())
		assert.Nil(t, entry.ClockOut)
	})

	t.Run("eight hour shift is all regular", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		require.NoError(t, entry.Close(start.Add(8*time.Hour)))

		assert.Equal(t, ClockStatusClockedOut, entry.Status)
		assert.True(t, entry.TotalHours.Equal(decimal.NewFromInt(8)))
		assert.True(t, entry.RegularHours.Equal(decimal.NewFromInt(8)))
		assert.True(t, entry.OvertimeHours.IsZero())
	})

	t.Run("nine and a half hour shift splits 8 regular 1.5 overtime", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		require.NoError(t, entry.Close(start.Add(9*time.Hour+30*time.Minute)))

		assert.True(t, entry.TotalHours.Equal(decimal.RequireFromString("9.5")))
		assert.True(t, entry.RegularHours.Equal(decimal.NewFromInt(8)))
		assert.True(t, entry.OvertimeHours.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("break window is recorded but not deducted", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		require.NoError(t, entry.StartBreak(start.Add(4*time.Hour)))
		assert.Equal(t, ClockStatusOnBreak, entry.Status)
		require.NoError(t, entry.EndBreak(start.Add(4*time.Hour+30*time.Minute)))
		assert.Equal(t, ClockStatusClockedIn, entry.Status)

		require.NoError(t, entry.Close(start.Add(9*time.Hour)))
		assert.True(t, entry.TotalHours.Equal(decimal.NewFromInt(9)))
		require.NotNil(t, entry.BreakStart)
		require.NotNil(t, entry.BreakEnd)
	})

	t.Run("closing while on break ends the break", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		require.NoError(t, entry.StartBreak(start.Add(4*time.Hour)))
		end := start.Add(6 * time.Hour)
		require.NoError(t, entry.Close(end))

		require.NotNil(t, entry.BreakEnd)
		assert.Equal(t, end, *entry.BreakEnd)
		assert.Equal(t, ClockStatusClockedOut, entry.Status)
	})

	t.Run("break transitions only from the right states", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		assert.ErrorIs(t, entry.EndBreak(start.Add(time.Hour)), shared.ErrInvalidState)
		require.NoError(t, entry.StartBreak(start.Add(time.Hour)))
		assert.ErrorIs(t, entry.StartBreak(start.Add(2*time.Hour)), shared.ErrInvalidState)
	})

	t.Run("closed entry cannot close again", func(t *testing.T) {
		entry, err := NewTimeEntry("downtown", testEmployee(t, "Amara", "18.00"), start)
		require.NoError(t, err)

		require.NoError(t, entry.Close(start.Add(8*time.Hour)))
		assert.ErrorIs(t, entry.Close(start.Add(9*time.Hour)), shared.ErrNotClockedIn)
	})
}

func TestGeneratePayroll(t *testing.T) {
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	rates := DefaultPayrollRates()

	closedShift := func(t *testing.T, emp *Employee, day time.Time, hours time.Duration) *TimeEntry {
		t.Helper()
		entry, err := NewTimeEntry("downtown", emp, day)
		require.NoError(t, err)
		require.NoError(t, entry.Close(day.Add(hours)))
		return entry
	}

	t.Run("prices regular and overtime hours", func(t *testing.T) {
		emp := testEmployee(t, "Amara", "20.00")
		entries := []*TimeEntry{
			closedShift(t, emp, start.Add(8*time.Hour), 9*time.Hour+30*time.Minute),
		}

		period, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, end, rates, now)
		require.NoError(t, err)
		require.Len(t, period.Entries, 1)

		line := period.Entries[0]
		// 8*20 + 1.5*20*1.5 = 205.00
		assert.True(t, line.GrossPay.Equal(decimal.RequireFromString("205.00")))
		assert.True(t, line.Taxes.Equal(decimal.RequireFromString("51.25")))
		assert.True(t, line.NetPay.Equal(decimal.RequireFromString("153.75")))
	})

	t.Run("aggregates multiple shifts per employee", func(t *testing.T) {
		emp := testEmployee(t, "Amara", "20.00")
		entries := []*TimeEntry{
			closedShift(t, emp, start.Add(8*time.Hour), 8*time.Hour),
			closedShift(t, emp, start.Add(32*time.Hour), 6*time.Hour),
		}

		period, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, end, rates, now)
		require.NoError(t, err)
		require.Len(t, period.Entries, 1)
		assert.True(t, period.Entries[0].RegularHours.Equal(decimal.NewFromInt(14)))
		assert.True(t, period.Entries[0].OvertimeHours.IsZero())
	})

	t.Run("skips open shifts and out of range shifts", func(t *testing.T) {
		emp := testEmployee(t, "Amara", "20.00")
		open, err := NewTimeEntry("downtown", emp, start.Add(8*time.Hour))
		require.NoError(t, err)
		entries := []*TimeEntry{
			open,
			closedShift(t, emp, start.Add(-48*time.Hour), 8*time.Hour),
		}

		period, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, end, rates, now)
		require.NoError(t, err)
		assert.Empty(t, period.Entries)
	})

	t.Run("shift on the end date counts when end is midnight", func(t *testing.T) {
		emp := testEmployee(t, "Amara", "20.00")
		endDay := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		entries := []*TimeEntry{
			closedShift(t, emp, endDay.Add(9*time.Hour), 8*time.Hour),
		}

		period, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, endDay, rates, now)
		require.NoError(t, err)
		require.Len(t, period.Entries, 1)
		assert.True(t, period.Entries[0].RegularHours.Equal(decimal.NewFromInt(8)))
	})

	t.Run("regeneration yields identical amounts", func(t *testing.T) {
		emp := testEmployee(t, "Amara", "20.00")
		entries := []*TimeEntry{
			closedShift(t, emp, start.Add(8*time.Hour), 9*time.Hour),
		}

		first, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, end, rates, now)
		require.NoError(t, err)
		second, err := GeneratePayroll("downtown", []*Employee{emp}, entries, start, end, rates, now.Add(time.Hour))
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.True(t, first.TotalGross.Equal(second.TotalGross))
		assert.True(t, first.TotalNet.Equal(second.TotalNet))
		assert.Equal(t, first.Entries, second.Entries)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		_, err := GeneratePayroll("downtown", nil, nil, end, start, rates, now)
		assert.Error(t, err)
	})
}
