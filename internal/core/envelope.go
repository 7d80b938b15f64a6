package core

import "encoding/json"

// Envelope is the single wire frame shape in both directions.
// Ack is set on client requests that expect a reply and echoed on the reply.
type Envelope struct {
	Event string          `json:"event"`
	Ack   *uint64         `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const EventAck = "ack"

type outbound struct {
	Event string  `json:"event"`
	Ack   *uint64 `json:"ack,omitempty"`
	Data  any     `json:"data"`
}

// EncodeEvent encodes a server-pushed event.
func EncodeEvent(event string, data any) (Frame, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}

// EncodeAck encodes the reply to the request carrying ack.
func EncodeAck(ack uint64, data any) (Frame, error) {
	return json.Marshal(outbound{Event: EventAck, Ack: &ack, Data: data})
}
