package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"homehub/internal/domain"
	"homehub/internal/dto"
	"homehub/internal/observability/middleware"
)

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	devices, err := h.devices.List(r.Context(), u.ID)
	if err != nil {
		middleware.Logger(r.Context()).Error("list devices failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get devices: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDevices(devices))
}

func (h *Handler) addDevice(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())
	u, _ := UserFromContext(r.Context())

	var req dto.RegisterDeviceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: %v", err)
		return
	}
	d, err := h.devices.Register(r.Context(), u.ID, req.DeviceID, req.MACAddress)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, "%v", err)
		return
	case errors.Is(err, domain.ErrDuplicateDevice):
		log.Info("device registration rejected", "user_id", u.ID, "reason", "duplicate mac")
		writeResult(w, http.StatusConflict, false, fmt.Sprintf("A device with MAC address %s is already registered", req.MACAddress))
		return
	case err != nil:
		log.Error("device registration failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to add device: %v", err)
		return
	}
	log.Info("device registered", "user_id", u.ID, "device", d.ID, "mac_address", d.MACAddress)
	writeResult(w, http.StatusOK, true, "Device added successfully")
}

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	d, err := h.devices.Get(r.Context(), u.ID, chi.URLParam(r, "device_id"))
	switch {
	case errors.Is(err, domain.ErrUnknownDevice):
		writeDetail(w, http.StatusNotFound, "Device not found")
		return
	case err != nil:
		middleware.Logger(r.Context()).Error("get device failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to get device: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDevice(d))
}

func (h *Handler) removeDevice(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	mac := strings.TrimSpace(r.URL.Query().Get("mac_address"))
	if mac == "" {
		writeDetail(w, http.StatusBadRequest, "mac_address query parameter is required")
		return
	}
	if err := h.devices.Remove(r.Context(), u.ID, chi.URLParam(r, "device_id"), mac); err != nil {
		middleware.Logger(r.Context()).Error("remove device failed", "user_id", u.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to remove device: %v", err)
		return
	}
	writeResult(w, http.StatusOK, true, "Device removed successfully")
}
