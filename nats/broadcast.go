package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"cardroom.io/holdem/game"
)

var natsLogger = log.With().Str("logger_name", "nats::broadcast").Logger()

// Broadcaster publishes committed table snapshots and narrative log lines
// to the table subjects. A nil connection disables publishing, so tests and
// standalone runs work without a NATS server.
type Broadcaster struct {
	nc *natsgo.Conn
}

func NewBroadcaster(natsURL string) (*Broadcaster, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	return &Broadcaster{nc: nc}, nil
}

func NewNoopBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// TableUpdated publishes the full snapshot and, separately, the most recent
// narrative line for clients that only render the banner.
func (b *Broadcaster) TableUpdated(table *game.Table) {
	if b.nc == nil {
		return
	}
	snapshot, err := jsoniter.Marshal(table)
	if err != nil {
		natsLogger.Error().
			Str("tableCode", table.Code).
			Msgf("Unable to marshal snapshot: %v", err)
		return
	}
	if err := b.nc.Publish(GetTableUpdateSubject(table.Code), snapshot); err != nil {
		natsLogger.Error().
			Str("tableCode", table.Code).
			Msgf("Unable to publish snapshot: %v", err)
	}
	if entry := table.LastLogEntry(); entry != "" {
		if err := b.nc.Publish(GetTableLogSubject(table.Code), []byte(entry)); err != nil {
			natsLogger.Error().
				Str("tableCode", table.Code).
				Msgf("Unable to publish log entry: %v", err)
		}
	}
}

// SubscribeUpdates delivers raw snapshot payloads for a table until the
// returned subscription is unsubscribed.
func (b *Broadcaster) SubscribeUpdates(tableCode string, handler func([]byte)) (*natsgo.Subscription, error) {
	if b.nc == nil {
		return nil, nil
	}
	return b.nc.Subscribe(GetTableUpdateSubject(tableCode), func(msg *natsgo.Msg) {
		handler(msg.Data)
	})
}

func (b *Broadcaster) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
