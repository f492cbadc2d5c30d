package ws

import (
	"encoding/json"
	"time"

	"github.com/agriprofit/agriprofit/pkg/models"
)

type MessageType string

const (
	MessageTypePrediction MessageType = "prediction"
	MessageTypeAlert      MessageType = "alert"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

type PredictionData struct {
	Crop       string  `json:"crop"`
	YieldKg    float64 `json:"yield_kg_per_ha"`
	Profit     float64 `json:"profit"`
	Profitable bool    `json:"profitable"`
	Failure    bool    `json:"crop_failure"`
}

type AlertData struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// BroadcastPrediction publishes a completed prediction to every feed
// client, plus any clients filtering on the predicted crop.
func BroadcastPrediction(hub *Hub, res *models.PredictionResult) {
	data := PredictionData{
		Crop:       res.Crop,
		YieldKg:    res.YieldKg,
		Profit:     res.Profit,
		Profitable: res.Profit > 0,
		Failure:    res.CropFailure,
	}
	msg := NewMessage(MessageTypePrediction, data)
	hub.BroadcastForCrop(res.Crop, msg.JSON())
}

func BroadcastAlert(hub *Hub, severity, message string) {
	msg := NewMessage(MessageTypeAlert, AlertData{Severity: severity, Message: message})
	hub.Broadcast(msg.JSON())
}
