// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package telemetry

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct{}

func (fakeToken) Wait() bool                     { return true }
func (fakeToken) WaitTimeout(time.Duration) bool { return true }
func (fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (fakeToken) Error() error { return nil }

type message struct {
	topic    string
	retained bool
	payload  []byte
}

type fakeClient struct {
	msgs         []message
	disconnected bool
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.msgs = append(f.msgs, message{topic: topic, retained: retained, payload: payload.([]byte)})
	return fakeToken{}
}

func (f *fakeClient) Disconnect(quiesce uint) { f.disconnected = true }

func TestPublishRateLimit(t *testing.T) {
	f := &fakeClient{}
	p := newPublisher(f, "thermal", time.Second)
	now := time.Unix(1000, 0)
	p.now = func() time.Time { return now }

	if err := p.Publish(Sample{Seq: 1, Mode: "Live", MaxC: 36.5}); err != nil {
		t.Fatal(err)
	}
	now = now.Add(100 * time.Millisecond)
	if err := p.Publish(Sample{Seq: 2}); err != nil {
		t.Fatal(err)
	}
	now = now.Add(time.Second)
	if err := p.Publish(Sample{Seq: 3, Mode: "Palette"}); err != nil {
		t.Fatal(err)
	}

	if len(f.msgs) != 2 {
		t.Fatalf("published %d messages, want 2", len(f.msgs))
	}
	for _, m := range f.msgs {
		if m.topic != "thermal/sample" {
			t.Fatalf("topic %q", m.topic)
		}
		if !m.retained {
			t.Fatal("sample not retained")
		}
	}
	var got Sample
	if err := json.Unmarshal(f.msgs[0].payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Seq != 1 || got.Mode != "Live" || got.MaxC != 36.5 {
		t.Fatalf("first sample %+v", got)
	}
	if err := json.Unmarshal(f.msgs[1].payload, &got); err != nil {
		t.Fatal(err)
	}
	if got.Seq != 3 {
		t.Fatalf("second sample %+v", got)
	}
}

func TestPublishFieldNames(t *testing.T) {
	f := &fakeClient{}
	p := newPublisher(f, "", 0)
	if err := p.Publish(Sample{Seq: 9, MinC: -1.5, MaxC: 42, Marked: 17}); err != nil {
		t.Fatal(err)
	}
	if f.msgs[0].topic != "seekpi/sample" {
		t.Fatalf("default topic %q", f.msgs[0].topic)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(f.msgs[0].payload, &keys); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"seq", "time", "mode", "min_c", "max_c", "marked"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("key %q missing from %s", k, f.msgs[0].payload)
		}
	}
}

func TestPublishFrame(t *testing.T) {
	f := &fakeClient{}
	p := newPublisher(f, "thermal", time.Second)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := p.PublishFrame(img); err != nil {
		t.Fatal(err)
	}
	if len(f.msgs) != 1 || f.msgs[0].topic != "thermal/frame" {
		t.Fatalf("messages %+v", f.msgs)
	}
	raw, err := base64.StdEncoding.DecodeString(string(f.msgs[0].payload))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(strings.NewReader(string(raw))); err != nil {
		t.Fatal(err)
	}
}

func TestClose(t *testing.T) {
	f := &fakeClient{}
	p := newPublisher(f, "", 0)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !f.disconnected {
		t.Fatal("client not disconnected")
	}
}

func TestConnectNoBroker(t *testing.T) {
	if _, err := Connect(nil); err == nil {
		t.Fatal("nil opts accepted")
	}
	if _, err := Connect(&Opts{}); err == nil {
		t.Fatal("empty broker accepted")
	}
}
