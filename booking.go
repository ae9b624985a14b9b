package bookchat

// Patient holds the contact details collected during the conversation.
type Patient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a confirmed appointment returned by the backend once the
// conversation concludes in a successful scheduling outcome. The client never
// mutates it; it is only formatted for display. Date is an ISO calendar date
// ("2025-06-11"), StartTime and EndTime are 24-hour "HH:MM" clock times, and
// Duration is in minutes.
type Booking struct {
	BookingID           string  `json:"booking_id"`
	ConfirmationCode    string  `json:"confirmation_code"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	AppointmentType     string  `json:"appointment_type"`
	AppointmentTypeName string  `json:"appointment_type_name"`
	Duration            int     `json:"duration"`
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	Patient             Patient `json:"patient"`
	Reason              string  `json:"reason"`
}

// Slot is an open appointment slot offered by the backend while the
// conversation is in the showing_slots phase.
type Slot struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
}

// AppointmentType describes one bookable appointment category.
type AppointmentType struct {
	Name        string `json:"name"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}
