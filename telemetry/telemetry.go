// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package telemetry publishes per-tick readings over MQTT so home
// automation setups can react to what the camera sees.
package telemetry

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Sample is one reading, published as JSON on <topic>/sample.
type Sample struct {
	Seq    uint64    `json:"seq"`
	Time   time.Time `json:"time"`
	Mode   string    `json:"mode"`
	MinC   float64   `json:"min_c"`
	MaxC   float64   `json:"max_c"`
	Marked int       `json:"marked"` // pixels matching the active highlight
}

// Opts configures the publisher.
type Opts struct {
	Broker   string // e.g. "tcp://127.0.0.1:1883"
	ClientID string
	Topic    string        // base topic, default "seekpi"
	Interval time.Duration // minimum delay between samples, default 1s
}

// client is the subset of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher rate-limits and publishes samples.
type Publisher struct {
	client   client
	topic    string
	interval time.Duration
	lastPub  time.Time
	now      func() time.Time
}

// Connect dials the broker and returns a ready publisher.
func Connect(opts *Opts) (*Publisher, error) {
	if opts == nil || opts.Broker == "" {
		return nil, errors.New("telemetry: broker address is required")
	}
	id := opts.ClientID
	if id == "" {
		id = "seekpi"
	}
	o := mqtt.NewClientOptions().AddBroker(opts.Broker).SetClientID(id)
	o.SetKeepAlive(30 * time.Second)
	o.SetPingTimeout(5 * time.Second)
	c := mqtt.NewClient(o)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return newPublisher(c, opts.Topic, opts.Interval), nil
}

func newPublisher(c client, topic string, interval time.Duration) *Publisher {
	if topic == "" {
		topic = "seekpi"
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Publisher{client: c, topic: topic, interval: interval, now: time.Now}
}

// Publish sends the sample unless one went out too recently. The
// sample is retained so subscribers see the latest reading on
// connect.
func (p *Publisher) Publish(s Sample) error {
	now := p.now()
	if !p.lastPub.IsZero() && now.Sub(p.lastPub) < p.interval {
		return nil
	}
	payload, err := json.Marshal(&s)
	if err != nil {
		return err
	}
	p.lastPub = now
	p.client.Publish(p.topic+"/sample", 0, true, payload)
	return nil
}

// PublishFrame pushes img as a base64 PNG on <topic>/frame. Not rate
// limited; meant for occasional snapshots like a finished flat field
// capture.
func (p *Publisher) PublishFrame(img image.Image) error {
	var buf bytes.Buffer
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if err := png.Encode(enc, img); err != nil {
		return err
	}
	enc.Close()
	p.client.Publish(p.topic+"/frame", 0, false, buf.Bytes())
	return nil
}

// Close flushes in-flight messages and disconnects.
func (p *Publisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
