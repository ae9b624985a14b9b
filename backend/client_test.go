package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/citomed/bookchat"
	"github.com/citomed/bookchat/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"What brings you in today?","phase":"greeting"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	reply, err := client.Send(context.Background(), "sess-1", "hello")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, "sess-1", body["session_id"])
	assert.Equal(t, "hello", body["message"])

	assert.Equal(t, "What brings you in today?", reply.Text)
	assert.Equal(t, bookchat.PhaseGreeting, reply.Phase)
	assert.Nil(t, reply.Booking)
}

func TestClient_Send_DecodesBookingReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": "Perfect! All set.",
			"phase": "complete",
			"intent": "confirm",
			"next_action": "confirm_booking",
			"booking": {
				"booking_id": "APPT-20250611-AB12CD34",
				"confirmation_code": "X9Y2Z1",
				"status": "confirmed",
				"appointment_type": "general_consultation",
				"appointment_type_name": "General Consultation",
				"duration": 30,
				"date": "2025-06-11",
				"start_time": "09:00",
				"end_time": "09:30",
				"patient": {"name": "Jan Kowalski", "email": "jan@example.com", "phone": "555-0101"},
				"reason": "headaches"
			}
		}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	reply, err := client.Send(context.Background(), "sess-1", "yes, confirm")
	require.NoError(t, err)

	assert.Equal(t, bookchat.PhaseComplete, reply.Phase)
	require.NotNil(t, reply.Booking)
	assert.Equal(t, "APPT-20250611-AB12CD34", reply.Booking.BookingID)
	assert.Equal(t, "X9Y2Z1", reply.Booking.ConfirmationCode)
	assert.Equal(t, "General Consultation", reply.Booking.AppointmentTypeName)
	assert.Equal(t, 30, reply.Booking.Duration)
	assert.Equal(t, "2025-06-11", reply.Booking.Date)
	assert.Equal(t, "09:00", reply.Booking.StartTime)
	assert.Equal(t, "Jan Kowalski", reply.Booking.Patient.Name)
}

func TestClient_Send_DecodesSlotsAndTypes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": "I have these options:",
			"phase": "showing_slots",
			"available_slots": [
				{"day": "wednesday", "date": "2025-06-11", "start_time": "09:00", "end_time": "09:30", "duration": 30}
			],
			"appointment_types": {
				"general_consultation": {"name": "General Consultation", "duration": 30, "description": "Standard doctor visit"}
			}
		}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	reply, err := client.Send(context.Background(), "sess-1", "morning please")
	require.NoError(t, err)

	require.Len(t, reply.AvailableSlots, 1)
	assert.Equal(t, "2025-06-11", reply.AvailableSlots[0].Date)
	assert.Equal(t, "09:00", reply.AvailableSlots[0].StartTime)
	require.Contains(t, reply.AppointmentTypes, "general_consultation")
	assert.Equal(t, 30, reply.AppointmentTypes["general_consultation"].Duration)
}

func TestClient_Send_FailureTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("unreachable backend is a network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // now nothing listens on srv.URL

		client := backend.New(srv.URL)
		_, err := client.Send(context.Background(), "sess-1", "hello")
		assert.ErrorIs(t, err, bookchat.ErrNetwork)
	})

	t.Run("non-2xx status is a protocol error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Session not found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		_, err := client.Send(context.Background(), "sess-1", "hello")
		assert.ErrorIs(t, err, bookchat.ErrProtocol)
		assert.ErrorContains(t, err, "HTTP 404")
		assert.ErrorContains(t, err, "Session not found")
	})

	t.Run("unparseable body is a malformed response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>definitely not json</html>`))
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		_, err := client.Send(context.Background(), "sess-1", "hello")
		assert.ErrorIs(t, err, bookchat.ErrMalformedResponse)
	})
}

func TestClient_Reset(t *testing.T) {
	t.Parallel()

	t.Run("posts the session id as a query parameter", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotID = r.URL.Query().Get("session_id")
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = w.Write([]byte(`{"status":"reset"}`))
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		require.NoError(t, client.Reset(context.Background(), "sess-42"))
		assert.Equal(t, "/reset-session", gotPath)
		assert.Equal(t, "sess-42", gotID)
	})

	t.Run("classifies failures like Send", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		assert.ErrorIs(t, client.Reset(context.Background(), "sess-42"), bookchat.ErrProtocol)
	})
}

func TestClient_Booking(t *testing.T) {
	t.Parallel()

	t.Run("fetches by id", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/bookings/APPT-1", r.URL.Path)
			_, _ = w.Write([]byte(`{"booking_id":"APPT-1","confirmation_code":"ABC123","date":"2025-06-11","start_time":"13:05"}`))
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		b, err := client.Booking(context.Background(), "APPT-1")
		require.NoError(t, err)
		assert.Equal(t, "APPT-1", b.BookingID)
		assert.Equal(t, "ABC123", b.ConfirmationCode)
	})

	t.Run("unknown id is a protocol error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"Booking not found"}`, http.StatusNotFound)
		}))
		defer srv.Close()

		client := backend.New(srv.URL)
		_, err := client.Booking(context.Background(), "APPT-NOPE")
		assert.ErrorIs(t, err, bookchat.ErrProtocol)
	})
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	assert.NoError(t, client.Health(context.Background()))
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	// Trailing slashes must not produce double-slash request paths.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL + "/")
	assert.NoError(t, client.Health(context.Background()))
}
