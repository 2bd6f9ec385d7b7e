// Command feedsim runs a local websocket server that emits synthetic seismic
// event frames in the push-feed envelope format. It exists for developing
// against the alert service without a live upstream feed.
//
// Usage:
//
//	go run ./cmd/feedsim -addr :9000 -interval 3s
//
// then point the service at it with FEED_URI=ws://localhost:9000/.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

var regions = []string{
	"OFFSHORE VALPARAISO, CHILE",
	"OFFSHORE COQUIMBO, CHILE",
	"ANTOFAGASTA, CHILE",
	"TARAPACA, CHILE",
	"MAULE, CHILE",
	"BIO-BIO, CHILE",
	"ATACAMA, CHILE",
	"REGION METROPOLITANA, CHILE",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	addr := flag.String("addr", ":9000", "listen address")
	interval := flag.Duration("interval", 3*time.Second, "delay between emitted frames")
	flag.Parse()

	log.Printf("feed simulator listening on %s (interval %s)", *addr, *interval)

	return http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFeed(w, r, *interval)
	}))
}

func serveFeed(w http.ResponseWriter, r *http.Request, interval time.Duration) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	log.Printf("client connected: %s", r.RemoteAddr)

	ctx := r.Context()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("client disconnected: %s", r.RemoteAddr)
			return
		case <-ticker.C:
			frame, err := json.Marshal(randomFrame())
			if err != nil {
				log.Printf("marshal frame: %v", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				log.Printf("write failed for %s: %v", r.RemoteAddr, err)
				return
			}
		}
	}
}

// randomFrame builds an envelope in the upstream push-feed shape. Magnitudes
// skew low so most frames are imperceptible, with an occasional strong event.
func randomFrame() map[string]any {
	mag := 3.0 + rand.Float64()*3.0
	if rand.Intn(10) == 0 {
		mag = 6.5 + rand.Float64()*1.5
	}
	depth := 10.0 + rand.Float64()*140.0

	return map[string]any{
		"data": map[string]any{
			"properties": map[string]any{
				"mag":          round1(mag),
				"depth":        round1(depth),
				"flynn_region": regions[rand.Intn(len(regions))],
				"time":         time.Now().UTC().Format(time.RFC3339),
				"magtype":      "mw",
			},
		},
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
