package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streamkit/donation-notifier/internal/broadcast"
	appErr "github.com/streamkit/donation-notifier/internal/errors"
	"github.com/streamkit/donation-notifier/internal/metrics"
	"github.com/streamkit/donation-notifier/internal/model"
	"github.com/streamkit/donation-notifier/internal/storage"
)

const donationMessageFormat = "%s님이 %s원을 기부했습니다!"

// DonationService is the per-message processing pipeline. Process is the
// commit decision: a nil error means the caller must mark the offset, a
// non-nil error means it must not. The broadcast side effect is queued after
// a successful save and can never influence that decision.
type DonationService interface {
	Process(ctx context.Context, value []byte) (*model.Notification, error)
	ListUnread(ctx context.Context) ([]model.Notification, error)
	ListAll(ctx context.Context) ([]model.Notification, error)
}

type donationService struct {
	store      storage.NotificationStorage
	dispatcher broadcast.Dispatcher
	log        *slog.Logger
}

func NewDonationService(
	store storage.NotificationStorage,
	dispatcher broadcast.Dispatcher,
	log *slog.Logger,
) DonationService {
	l := log.With("layer", "service", "component", "donationService")
	return &donationService{
		store:      store,
		dispatcher: dispatcher,
		log:        l,
	}
}

// Process converts one topic record into a stored notification and queues the
// chat broadcast. Malformed or missing fields default permissively; there is
// no reject path for bad input. A storage failure fails the whole message.
func (s *donationService) Process(ctx context.Context, value []byte) (*model.Notification, error) {
	event := model.ParseDonationEvent(value)
	text := fmt.Sprintf(donationMessageFormat, event.DonorName(), event.Amount.String())

	notif := &model.Notification{
		UserID:   event.UserID,
		UserName: event.UserName,
		Amount:   event.Amount,
		Message:  text,
	}

	if err := s.store.Save(ctx, notif); err != nil {
		metrics.DonationsProcessed.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.log.Error("Failed to save donation notification",
			slog.String("message", text),
			slog.Any("error", err))
		return nil, err
	}

	metrics.DonationsProcessed.WithLabelValues(metrics.OutcomeOK).Inc()
	s.log.Info("Donation notification saved",
		slog.Int64("id", notif.ID),
		slog.String("message", text))

	msg := model.BroadcastMessage{
		User: model.BroadcastSender,
		Msg:  text,
		Type: model.BroadcastTypeDonation,
	}
	if err := s.dispatcher.Enqueue(msg); err != nil {
		// Dropped broadcasts are logged only; the notification is already
		// persisted and the offset will still be committed.
		if appErr.IsQueueFull(err) {
			s.log.Warn("Broadcast dropped, queue full", slog.String("msg", text))
		} else {
			s.log.Warn("Broadcast dropped", slog.String("msg", text), slog.Any("error", err))
		}
	}

	return notif, nil
}

// ListUnread returns unread notifications, newest first.
func (s *donationService) ListUnread(ctx context.Context) ([]model.Notification, error) {
	notifs, err := s.store.ListUnread(ctx)
	if err != nil {
		s.log.Error("Failed to list unread notifications", slog.Any("error", err))
		return nil, appErr.NewInternal("failed to list unread notifications: %v", err)
	}
	return notifs, nil
}

// ListAll returns every notification, newest first.
func (s *donationService) ListAll(ctx context.Context) ([]model.Notification, error) {
	notifs, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to list notifications", slog.Any("error", err))
		return nil, appErr.NewInternal("failed to list notifications: %v", err)
	}
	return notifs, nil
}
