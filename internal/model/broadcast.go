package model

const (
	// BroadcastSender is the display name the chat frontend shows for donation alerts.
	BroadcastSender = "🎁 기부알림"

	BroadcastTypeDonation = "DONATION_ALERT"
)

// BroadcastMessage is the payload POSTed to the chat server's /api/broadcast endpoint.
type BroadcastMessage struct {
	User string `json:"user"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}
