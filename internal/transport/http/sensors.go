package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/observability/middleware"
)

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handler) getSensorData(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := parseID(chi.URLParam(r, "device_id"))
	if !ok {
		writeDetail(w, http.StatusBadRequest, "device id must be a positive integer")
		return
	}
	start, err := queryTime(r, "start_date")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid start_date: %v", err)
		return
	}
	end, err := queryTime(r, "end_date")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid end_date: %v", err)
		return
	}

	readings, err := h.sensors.Query(r.Context(), u.ID, id, start, end)
	switch {
	case errors.Is(err, domain.ErrUnknownDevice):
		writeDetail(w, http.StatusNotFound, "Device not found")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("sensor query failed", "user_id", u.ID, "device", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get sensor data: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSensorReadings(readings))
}

func (h *Handler) postSensorData(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := parseID(chi.URLParam(r, "device_id"))
	if !ok {
		writeDetail(w, http.StatusBadRequest, "device id must be a positive integer")
		return
	}
	var req dto.SensorReadingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: %v", err)
		return
	}
	reading, err := req.Reading()
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid sensor reading: %v", err)
		return
	}

	err = h.sensors.IngestForOwner(r.Context(), u.ID, id, reading)
	switch {
	case errors.Is(err, domain.ErrUnknownDevice):
		writeDetail(w, http.StatusNotFound, "Device not found")
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("sensor write failed", "user_id", u.ID, "device", id, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to add sensor data: %v", err)
		return
	}
	writeResult(w, http.StatusOK, true, "Data added successfully")
}

// ingestByMAC is the unauthenticated route the MQTT bridge posts to.
func (h *Handler) ingestByMAC(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())
	mac := chi.URLParam(r, "mac_address")

	var req dto.SensorReadingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.IngestError{Error: "Invalid sensor payload: " + err.Error()})
		return
	}
	reading, err := req.Reading()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.IngestError{Error: "Invalid sensor payload: " + err.Error()})
		return
	}

	d, err := h.sensors.IngestByMAC(r.Context(), mac, reading)
	switch {
	case errors.Is(err, domain.ErrUnknownDevice):
		log.Warn("sensor data for unknown device", "mac_address", mac, "ip", clientIP(r))
		writeJSON(w, http.StatusNotFound, dto.IngestError{Error: "No device found with MAC address: " + mac})
		return
	case err != nil:
		log.Error("sensor ingestion failed", "mac_address", mac, "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.IngestError{Error: "Failed to process sensor data: " + err.Error()})
		return
	}
	log.Debug("sensor data received", "device", d.ID, "user_id", d.UserID)
	writeJSON(w, http.StatusOK, dto.IngestAck{Message: "Data received successfully"})
}
