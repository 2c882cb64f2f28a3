// internal/httpapi/server.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package httpapi exposes the resolver's command surface (§6.1), a
// Prometheus metrics endpoint, a websocket stream of synthesized
// commands, and a debug state dump, for a dashboard process to drive
// and observe a Resolver over HTTP instead of embedding it in-process.
package httpapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/iancoleman/orderedmap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmp/vice-cr/internal/debugdump"
	"github.com/mmp/vice-cr/internal/log"
	"github.com/mmp/vice-cr/internal/resolve"
)

// Metrics are the three resolver-tick gauges/counters named in §3.1.
type Metrics struct {
	TickDuration      prometheus.Histogram
	ActiveConflicts   prometheus.Gauge
	CommandsApplied   prometheus.Counter
}

// NewMetrics registers the resolver's metrics with reg (pass
// prometheus.DefaultRegisterer unless isolating for tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "resolver_tick_duration_seconds",
			Help:    "Wall-clock duration of a single Resolver.Tick call.",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveConflicts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "resolver_active_conflicts",
			Help: "Number of conflict pairs currently under recovery observation.",
		}),
		CommandsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "resolver_commands_applied_total",
			Help: "Count of commands emitted by Tick (one per registered aircraft per tick, whether or not it changes anything).",
		}),
	}
}

// Server wires a Resolver into an HTTP mux; it holds no resolver state
// of its own beyond the broadcast hub for the websocket command stream.
type Server struct {
	r       *resolve.Resolver
	lg      *log.Logger
	metrics *Metrics

	mu   sync.Mutex
	subs map[*websocket.Conn]struct{}

	upgrader websocket.Upgrader
}

// New builds a chi Router exposing the command, metrics, command-stream,
// and debug endpoints described in SPEC_FULL.md §4.K.
func New(r *resolve.Resolver, lg *log.Logger, metrics *Metrics) http.Handler {
	s := &Server{r: r, lg: lg, metrics: metrics, subs: make(map[*websocket.Conn]struct{})}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	mux.Post("/command/rmethh", s.handleCommand1(func(arg string) (bool, string) { return r.RMETHH(arg) }))
	mux.Post("/command/rmethv", s.handleCommand1(func(arg string) (bool, string) { return r.RMETHV(arg) }))
	mux.Post("/command/noreso", s.handleCommand1(func(arg string) (bool, string) { return r.NORESO(arg) }))
	mux.Post("/command/resooff", s.handleCommand1(func(arg string) (bool, string) { return r.RESOOFF(arg) }))
	mux.Post("/command/priorules", s.handlePriorules)

	if metrics != nil {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Get("/ws/commands", s.handleWebsocket)
	mux.Get("/debug/state", s.handleDebugState)
	mux.Get("/debug/dump/{acid}", s.handleDebugDump)

	return mux
}

type commandRequest struct {
	Arg string `json:"arg"`
}

type commandResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// handleCommand1 adapts a single-argument command method (RMETHH,
// RMETHV, NORESO, RESOOFF) to an HTTP handler. A malformed body or a
// command the resolver itself rejects both answer with ok=false in the
// JSON body, never an HTTP 5xx -- per §7, a bad command is a client
// input error, not a server fault.
func (s *Server) handleCommand1(cmd func(arg string) (bool, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body commandRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, commandResponse{OK: false, Message: "malformed request: " + err.Error()})
			return
		}
		ok, msg := cmd(body.Arg)
		writeJSON(w, commandResponse{OK: ok, Message: msg})
	}
}

type priorulesRequest struct {
	Enable string `json:"enable"`
	Code   string `json:"code"`
}

func (s *Server) handlePriorules(w http.ResponseWriter, req *http.Request) {
	var body priorulesRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, commandResponse{OK: false, Message: "malformed request: " + err.Error()})
		return
	}
	ok, msg := s.r.PRIORULES(body.Enable, body.Code)
	writeJSON(w, commandResponse{OK: ok, Message: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Broadcast pushes cmds to every connected websocket subscriber as a
// JSON frame; call it once per tick with the resolver's Tick output.
func (s *Server) Broadcast(cmds []resolve.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) == 0 {
		return
	}
	data, err := json.Marshal(cmds)
	if err != nil {
		s.lg.Errorf("httpapi: marshal commands: %v", err)
		return
	}
	for c := range s.subs {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(s.subs, c)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.lg.Warnf("httpapi: websocket upgrade: %v", err)
		return
	}
	s.mu.Lock()
	s.subs[conn] = struct{}{}
	s.mu.Unlock()
}

// handleDebugState dumps switches, registered aircraft, and open
// resopairs as JSON, using an orderedmap so the key order in the
// response is stable across requests (plain map iteration is not).
func (s *Server) handleDebugState(w http.ResponseWriter, req *http.Request) {
	o := orderedmap.New()
	o.Set("horizontal", s.r.ResoHoriz)
	o.Set("vertical", s.r.ResoVert)
	o.Set("priority", s.r.Prio)
	o.Set("priority_code", s.r.PrioCode.String())
	o.Set("aircraft", s.r.Acids())

	var keys []string
	for _, p := range s.r.OpenPairs() {
		keys = append(keys, p.Own+"->"+p.Intr)
	}
	slices.Sort(keys)
	pairs := orderedmap.New()
	for _, k := range keys {
		pairs.Set(k, true)
	}
	o.Set("open_pairs", pairs)

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(o)
}

// handleDebugDump implements the DUMPRESO debug command (§4.M) over
// HTTP: it pretty-prints one aircraft's resolver-owned state to the
// server's stdout via godump and acknowledges the request.
func (s *Server) handleDebugDump(w http.ResponseWriter, req *http.Request) {
	acid := chi.URLParam(req, "acid")
	tas, hdg, ok := s.r.InitIntruder(acid)
	if !ok {
		http.NotFound(w, req)
		return
	}
	debugdump.Dump(debugdump.AircraftSummary{
		ACID:            acid,
		Active:          s.r.Active(acid),
		InitIntruderTAS: tas,
		InitIntruderHdg: hdg,
		NoReso:          s.r.NoReso(acid),
		ResoOff:         s.r.ResoOff(acid),
	})
	writeJSON(w, commandResponse{OK: true, Message: "dumped " + acid + " to server log"})
}
