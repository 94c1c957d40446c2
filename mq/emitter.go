package mq

import (
	"encoding/json"
	"log"
	"time"

	"cadastra/db"
	"cadastra/globals"
	"cadastra/models"
	"cadastra/rdx"

	"github.com/google/uuid"
)

const scheduleChannel = "cedule-events"

// ScheduleEvent describes one board mutation, published so the notification
// side of the application can react without coupling to the engine.
type ScheduleEvent struct {
	Kind      string `json:"kind"`
	Day       string `json:"day"`
	TeamName  string `json:"teamName,omitempty"`
	DossierID string `json:"dossierId,omitempty"`
	Message   string `json:"message"`
}

// Emit publishes a schedule event on Redis. Fire-and-forget; failures log.
func Emit(evt ScheduleEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[Emit] marshal error: %v", err)
		return
	}
	if err := rdx.Publish(scheduleChannel, data); err != nil {
		log.Printf("[Emit] publish error: %v", err)
	}
}

// StartNotificationWorker consumes schedule events and materializes
// notification records for the office application to display.
func StartNotificationWorker() {
	sub := rdx.Conn.Subscribe(globals.Ctx, scheduleChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] listening for schedule events...")

	for msg := range ch {
		var evt ScheduleEvent
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[NotificationWorker] bad payload: %v", err)
			continue
		}

		n := models.Notification{
			ID:        uuid.NewString(),
			Kind:      evt.Kind,
			Day:       evt.Day,
			TeamName:  evt.TeamName,
			DossierID: evt.DossierID,
			Message:   evt.Message,
			CreatedAt: time.Now(),
		}
		if _, err := db.NotificationsCollection.InsertOne(globals.Ctx, n); err != nil {
			log.Printf("[NotificationWorker] insert error: %v", err)
		}
	}
}
