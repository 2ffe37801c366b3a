// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package webui serves the composed viewer output over HTTP, which is
// handy for watching the camera away from the panel.
//
// GET / serves a small page that connects to /stream. /stream is a
// websocket pushing one text frame per tick: "I" followed by the
// base64 PNG of the composed image, then "M" followed by JSON
// metadata. /still.png serves the latest composed frame.
package webui

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"image"
	"image/draw"
	"image/png"
	"log"
	"net/http"
	"sync"

	"github.com/maruel/interrupt"
	"github.com/maruel/serve-dir/loghttp"
	"golang.org/x/net/websocket"
)

// Meta describes the frame pushed alongside it on the stream socket.
type Meta struct {
	Seq     uint64  `json:"seq"`
	Mode    string  `json:"mode"`
	Palette string  `json:"palette"`
	MinC    float64 `json:"min_c"`
	MaxC    float64 `json:"max_c"`
	Unit    string  `json:"unit"`
}

type frame struct {
	img  *image.RGBA
	meta Meta
}

// Server distributes composed frames to web clients.
type Server struct {
	cond      sync.Cond
	frames    [16]frame
	lastIndex int
	closed    bool
}

// NewServer returns a Server with no frames yet.
func NewServer() *Server {
	s := &Server{lastIndex: -1}
	s.cond.L = &sync.Mutex{}
	return s
}

// Start serves the UI on the given port in the background for the
// lifetime of the process.
func Start(port int) *Server {
	s := NewServer()
	fmt.Printf("Listening on %d\n", port)
	go http.ListenAndServe(fmt.Sprintf(":%d", port), s.Handler())
	go func() {
		<-interrupt.Channel
		s.Close()
	}()
	return s
}

// Handler returns the root handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/still.png", s.still)
	mux.Handle("/stream", websocket.Handler(s.stream))
	return &loghttp.Handler{Handler: mux}
}

// Add publishes the frame composed this tick. img is copied so the
// caller is free to reuse its buffer.
func (s *Server) Add(img image.Image, meta Meta) {
	b := img.Bounds()
	dup := image.NewRGBA(b)
	draw.Draw(dup, b, img, b.Min, draw.Src)
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.lastIndex = (s.lastIndex + 1) % len(s.frames)
	s.frames[s.lastIndex] = frame{img: dup, meta: meta}
	s.cond.Broadcast()
}

// Close wakes stream clients so they disconnect.
func (s *Server) Close() error {
	s.cond.L.Lock()
	s.closed = true
	s.cond.L.Unlock()
	s.cond.Broadcast()
	return nil
}

var rootTmpl = template.Must(template.New("root").Parse(`<!DOCTYPE html>
<html>
<head>
<title>seekpi</title>
<style>
img#view { width: 480px; height: auto; image-rendering: pixelated; }
pre#meta { font-size: small; }
</style>
</head>
<body>
<img id="view" src="/still.png">
<pre id="meta"></pre>
<script>
var ws = new WebSocket("ws://" + location.host + "/stream");
ws.onmessage = function(e) {
	if (e.data[0] == "I") {
		document.getElementById("view").src = "data:image/png;base64," + e.data.slice(1);
	} else if (e.data[0] == "M") {
		document.getElementById("meta").textContent = e.data.slice(1);
	}
};
</script>
</body>
</html>`))

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	if err := rootTmpl.Execute(w, nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) still(w http.ResponseWriter, r *http.Request) {
	s.cond.L.Lock()
	var img *image.RGBA
	if s.lastIndex != -1 {
		img = s.frames[s.lastIndex].img
	}
	s.cond.L.Unlock()
	if img == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// stream pushes the most recent frame to the client, skipping frames
// it is too slow for.
func (s *Server) stream(w *websocket.Conn) {
	defer w.Close()
	buf := &bytes.Buffer{}
	last := -1
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	for !s.closed {
		for s.lastIndex == -1 || last == s.lastIndex {
			s.cond.Wait()
			if s.closed {
				return
			}
		}
		last = s.lastIndex
		f := s.frames[last]
		// Encoding and I/O happen without the lock.
		s.cond.L.Unlock()
		err := sendFrame(w, buf, f)
		s.cond.L.Lock()
		if err != nil {
			log.Printf("webui: stream: %s", err)
			return
		}
	}
}

func sendFrame(w *websocket.Conn, buf *bytes.Buffer, f frame) error {
	buf.Reset()
	buf.WriteByte('I')
	enc := base64.NewEncoder(base64.StdEncoding, buf)
	if err := png.Encode(enc, f.img); err != nil {
		return err
	}
	enc.Close()
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	buf.Reset()
	buf.WriteByte('M')
	if err := json.NewEncoder(buf).Encode(&f.meta); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
