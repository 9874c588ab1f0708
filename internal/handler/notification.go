package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	appErr "github.com/streamkit/donation-notifier/internal/errors"
	"github.com/streamkit/donation-notifier/internal/service"
)

// NotificationHandler serves the read-only notification API.
type NotificationHandler struct {
	svc    service.DonationService
	logger *slog.Logger
}

func NewNotificationHandler(svc service.DonationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, logger: logger}
}

// ListAll returns every notification, newest first.
func (h *NotificationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	notifs, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.logger.Error("ListAll failed", slog.Any("error", err))
		writeFetchError(w, err)
		return
	}
	writeJSON(w, notifs)
}

// ListUnread returns notifications with is_read = false, newest first.
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	notifs, err := h.svc.ListUnread(r.Context())
	if err != nil {
		h.logger.Error("ListUnread failed", slog.Any("error", err))
		writeFetchError(w, err)
		return
	}
	writeJSON(w, notifs)
}

// writeFetchError maps internal (storage) failures to 500; anything else that
// escapes the service unclassified, like a cancelled request context, gets 503.
func writeFetchError(w http.ResponseWriter, err error) {
	status := http.StatusServiceUnavailable
	if appErr.IsInternal(err) {
		status = http.StatusInternalServerError
	}
	http.Error(w, "failed to fetch notifications", status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
