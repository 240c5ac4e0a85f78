package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentModels "github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	slotModels "github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	statsModels "github.com/m04kA/SMC-AppointmentService/internal/service/stats/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.Default()
	cfg.Schedule.Timezone = "UTC"
	cfg.Metrics.Enabled = false
	cfg.RateLimit.Enabled = false

	// Среда, неделя начинается 2026-10-12
	clock := fixedClock{now: time.Date(2026, 10, 14, 11, 0, 0, 0, time.UTC)}

	a, err := New(context.Background(), cfg, logger.NewNop(), nil, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.SeedWeek(context.Background()))
	return a
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func bookingBody(slotID string) map[string]string {
	return map[string]string{
		"slotId":        slotID,
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"reason":        "Checkup",
	}
}

func findSlot(slots []slotModels.SlotResponse, id string) (slotModels.SlotResponse, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return slotModels.SlotResponse{}, false
}

func TestApp_BookingLifecycle(t *testing.T) {
	a := newTestApp(t)
	h := a.Handler

	// Сетка недели: 5 дней по 16 слотов
	rec := doJSON(t, h, http.MethodGet, "/api/slots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decode[[]slotModels.SlotResponse](t, rec)
	require.Len(t, slots, 80)
	assert.Equal(t, "2026-10-12", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.True(t, slots[0].IsAvailable)

	slotID := slots[0].ID

	// Бронирование
	rec = doJSON(t, h, http.MethodPost, "/api/appointments", bookingBody(slotID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[appointmentModels.AppointmentResponse](t, rec)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, slotID, first.SlotID)

	// Повторное бронирование того же слота
	rec = doJSON(t, h, http.MethodPost, "/api/appointments", bookingBody(slotID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/slots?date=2026-10-12", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	daySlots := decode[[]slotModels.SlotResponse](t, rec)
	assert.Len(t, daySlots, 16)
	booked, ok := findSlot(daySlots, slotID)
	require.True(t, ok)
	assert.False(t, booked.IsAvailable)

	// Отказ освобождает слот
	rec = doJSON(t, h, http.MethodPatch, "/api/appointments/"+first.ID, map[string]string{"status": "denied"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "denied", decode[appointmentModels.AppointmentResponse](t, rec).Status)

	rec = doJSON(t, h, http.MethodGet, "/api/slots?date=2026-10-12", nil)
	freed, ok := findSlot(decode[[]slotModels.SlotResponse](t, rec), slotID)
	require.True(t, ok)
	assert.True(t, freed.IsAvailable)

	// Решение окончательное
	rec = doJSON(t, h, http.MethodPatch, "/api/appointments/"+first.ID, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Слот снова можно забронировать
	rec = doJSON(t, h, http.MethodPost, "/api/appointments", bookingBody(slotID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	second := decode[appointmentModels.AppointmentResponse](t, rec)

	rec = doJSON(t, h, http.MethodPatch, "/api/appointments/"+second.ID, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Одна заявка ожидает решения
	rec = doJSON(t, h, http.MethodPost, "/api/appointments", bookingBody(slots[1].ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/appointments/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statsModels.StatsResponse{
		TotalSlots:        80,
		Pending:           1,
		Approved:          1,
		Denied:            1,
		TotalAppointments: 3,
	}, decode[statsModels.StatsResponse](t, rec))

	rec = doJSON(t, h, http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]appointmentModels.AppointmentResponse](t, rec)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)

	rec = doJSON(t, h, http.MethodGet, "/api/appointments?status=approved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decode[[]appointmentModels.AppointmentResponse](t, rec)
	require.Len(t, approved, 1)
	assert.Equal(t, second.ID, approved[0].ID)

	rec = doJSON(t, h, http.MethodGet, "/api/appointments?status=all", nil)
	assert.Len(t, decode[[]appointmentModels.AppointmentResponse](t, rec), 3)

	rec = doJSON(t, h, http.MethodGet, "/api/appointments/"+second.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decode[appointmentModels.AppointmentResponse](t, rec).Status)
}

func TestApp_Errors(t *testing.T) {
	a := newTestApp(t)
	h := a.Handler

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{"unknown appointment", http.MethodGet, "/api/appointments/nope", nil, http.StatusNotFound},
		{"unknown slot", http.MethodPost, "/api/appointments", bookingBody("missing"), http.StatusNotFound},
		{"patch unknown appointment", http.MethodPatch, "/api/appointments/nope", map[string]string{"status": "approved"}, http.StatusNotFound},
		{"invalid date", http.MethodGet, "/api/slots?date=12-10-2026", nil, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/appointments", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())

			resp := decode[handlers.ErrorResponse](t, rec)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestApp_UnknownStatusFilterReturnsEmptyList(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler, http.MethodGet, "/api/slots", nil)
	slots := decode[[]slotModels.SlotResponse](t, rec)
	rec = doJSON(t, a.Handler, http.MethodPost, "/api/appointments", bookingBody(slots[0].ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, a.Handler, http.MethodGet, "/api/appointments?status=cancelled", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestApp_BodyOverConfiguredLimit(t *testing.T) {
	a := newTestApp(t)

	body := bookingBody("any")
	body["reason"] = strings.Repeat("x", int(config.Default().Server.MaxBodyBytes)+1)

	rec := doJSON(t, a.Handler, http.MethodPost, "/api/appointments", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
}

func TestApp_ValidationErrorListsFields(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler, http.MethodPost, "/api/appointments", map[string]string{
		"slotId":       "any",
		"customerName": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[handlers.ErrorResponse](t, rec)
	fields := make([]string, 0, len(resp.Errors))
	for _, f := range resp.Errors {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"customerName", "customerEmail", "reason"}, fields)
}

func TestApp_SeedIsIdempotent(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SeedWeek(context.Background()))

	rec := doJSON(t, a.Handler, http.MethodGet, "/api/slots", nil)
	assert.Len(t, decode[[]slotModels.SlotResponse](t, rec), 80)
}

func TestApp_HealthAndRequestID(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a.Handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
