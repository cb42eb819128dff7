package main

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, cfg *Config, auth *AdminAuth) *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket endpoint; joining is implicit on connect
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warn("upgrade error", zap.Error(err))
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		go client.WritePump()

		name := sanitizeName(r.URL.Query().Get("name"))
		player := hub.game.Join(name, client)
		client.playerID = player.ID

		hub.register <- client
		go client.ReadPump()
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Read-only world snapshot for health/metrics reporting
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		status := hub.game.Status()
		writeJSON(w, map[string]interface{}{
			"players":        status.Players,
			"projectiles":    status.Projectiles,
			"tick":           status.Tick,
			"uptime_seconds": int64(hub.Uptime() / time.Second),
			"connections":    hub.TotalConns(),
		})
	})

	// QR code image of the public join URL
	mux.HandleFunc("/qr", func(w http.ResponseWriter, r *http.Request) {
		png, err := qrcode.Encode(cfg.Server.PublicURL, qrcode.Medium, 256)
		if err != nil {
			http.Error(w, "qr encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		token, err := auth.Login(req.Password, extractIP(r))
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]string{"token": token})
	})

	mux.HandleFunc("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
		if err := auth.ValidateToken(bearerToken(r)); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		status := hub.game.Status()
		counts, err := hub.game.analytics.EventCounts(30)
		if err != nil {
			hub.log.Warn("analytics query failed", zap.Error(err))
		}
		writeJSON(w, map[string]interface{}{
			"players":        status.Players,
			"projectiles":    status.Projectiles,
			"tick":           status.Tick,
			"connections":    hub.TotalConns(),
			"uptime_seconds": int64(hub.Uptime() / time.Second),
			"events_30d":     counts,
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
