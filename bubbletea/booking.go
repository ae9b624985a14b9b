package bubbletea

import (
	"strings"

	"github.com/citomed/bookchat"
	"github.com/citomed/bookchat/format"
)

const panelMaxWidth = 60

// renderBooking renders the confirmation panel shown once the backend
// finalizes an appointment. All date/time fields go through the format
// package; the raw payload is never altered.
func renderBooking(b *bookchat.Booking, styles Styles, width int) string {
	var lines []string

	lines = append(lines, styles.Accent.Render("Appointment confirmed"))
	lines = append(lines, "")

	if b.AppointmentTypeName != "" {
		name := b.AppointmentTypeName
		if b.Duration > 0 {
			name += " (" + format.Duration(b.Duration) + ")"
		}
		lines = append(lines, name)
	}
	if b.Date != "" {
		lines = append(lines, format.Date(b.Date))
	}
	if b.StartTime != "" {
		lines = append(lines, format.TimeRange(b.StartTime, b.EndTime))
	}

	if p := b.Patient; p.Name != "" || p.Email != "" || p.Phone != "" {
		lines = append(lines, "")
		if p.Name != "" {
			lines = append(lines, p.Name)
		}
		if p.Email != "" {
			lines = append(lines, styles.Muted.Render(p.Email))
		}
		if p.Phone != "" {
			lines = append(lines, styles.Muted.Render(p.Phone))
		}
	}

	lines = append(lines, "")
	if b.BookingID != "" {
		lines = append(lines, styles.Muted.Render("Booking ID ")+b.BookingID)
	}
	if b.ConfirmationCode != "" {
		lines = append(lines, styles.Muted.Render("Confirmation ")+styles.Success.Render(b.ConfirmationCode))
	}

	panelWidth := width - 2
	if panelWidth > panelMaxWidth {
		panelWidth = panelMaxWidth
	}
	panel := styles.Panel
	if panelWidth > 0 {
		panel = panel.Width(panelWidth)
	}
	return panel.Render(strings.Join(lines, "\n"))
}
