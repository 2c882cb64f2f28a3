// main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// resolverd embeds the conflict resolver behind an HTTP surface: it
// accepts per-tick traffic/conflict input, runs Resolver.Tick, and
// serves the resulting commands, metrics, and debug state. It is a
// demonstration host, not the simulator the resolver is designed to be
// embedded in (see SPEC_FULL.md §1 for the scope boundary).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmp/vice-cr/internal/cache"
	"github.com/mmp/vice-cr/internal/debugdump"
	"github.com/mmp/vice-cr/internal/httpapi"
	"github.com/mmp/vice-cr/internal/log"
	"github.com/mmp/vice-cr/internal/resolve"
	"github.com/mmp/vice-cr/internal/telemetry"
	"github.com/mmp/vice-cr/internal/traffic"
)

var (
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	listenAddr = flag.String("listen", "localhost:8870", "HTTP listen address for the command/metrics/debug surface")
	rmethh     = flag.String("rmethh", "", "initial RMETHH override (ON, BOTH, SPD, HDG, OFF, NONE); empty keeps the default")
)

// zeroWind and passthroughLimiter stand in for the external wind and
// performance-envelope collaborators a real embedding simulator would
// supply; resolverd's own scope is the HTTP surface around the
// resolver, not those subsystems.
type zeroWind struct{}

func (zeroWind) GetWindVector(lat, lon, alt float64) (float64, float64) { return 0, 0 }

type passthroughLimiter struct{}

func (passthroughLimiter) Limits(acid string, tas, vs, alt, ax float64) (float64, float64, float64) {
	return tas, vs, alt
}

type noopRoute struct{}

func (noopRoute) ActiveWaypoint(acid string) (string, bool) { return "", false }
func (noopRoute) Direct(acid string, wp string)             {}

func main() {
	flag.Parse()

	lg := log.New(true, *logLevel, *logDir)
	lg.Info("resolverd starting")

	wind := cache.NewWind(zeroWind{}, 4096)
	route := cache.NewRoute(noopRoute{}, 30*time.Second)

	r := resolve.New(wind, passthroughLimiter{}, route, lg)
	if *rmethh != "" {
		if ok, msg := r.RMETHH(*rmethh); !ok {
			lg.Warnf("resolverd: -rmethh %q rejected: %s", *rmethh, msg)
		}
	}

	engagementLog := telemetry.NewEngagementLog(logFilePath(*logDir, "engagement.csv"))
	defer engagementLog.Shutdown()
	r.Observer = engagementLog

	stateLog := telemetry.NewStateLog(logFilePath(*logDir, "state.csv"), 10)
	defer stateLog.Close()

	metrics := httpapi.NewMetrics(prometheus.DefaultRegisterer)
	mux := httpapi.New(r, lg, metrics)

	http.Handle("/", mux)
	http.HandleFunc("/tick", tickHandler(r, engagementLog, stateLog, metrics))

	lg.Infof("resolverd listening on %s", *listenAddr)
	if err := http.ListenAndServe(*listenAddr, nil); err != nil {
		lg.Errorf("resolverd: %v", err)
		os.Exit(1)
	}
}

func logFilePath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + name
}

type tickRequest struct {
	Traffic   []traffic.State         `json:"traffic"`
	Conflicts *traffic.ConflictPairs  `json:"conflicts"`
	AsasDt    float64                 `json:"asas_dt"`
	Tick      int64                   `json:"tick"`
}

// tickHandler lets an external simulator drive the resolver over HTTP:
// it decodes one tick's traffic and conflict snapshot, registers any
// never-seen aircraft, runs Tick, and returns the synthesized commands.
func tickHandler(r *resolve.Resolver, el *telemetry.EngagementLog, sl *telemetry.StateLog, m *httpapi.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body tickRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
			return
		}
		if body.Conflicts == nil {
			body.Conflicts = &traffic.ConflictPairs{}
		}

		for _, ac := range body.Traffic {
			r.Register(ac.ACID)
		}

		el.Tick(body.Tick)
		start := time.Now()
		cmds := r.Tick(body.Traffic, body.Conflicts, body.AsasDt)
		if m != nil {
			m.TickDuration.Observe(time.Since(start).Seconds())
			m.ActiveConflicts.Set(float64(len(r.OpenPairs())))
			m.CommandsApplied.Add(float64(len(cmds)))
		}
		// The state log runs off the request goroutine, so the snapshot
		// it samples is deep-copied first: the logger writes out its own
		// copy on its own schedule, independent of body.Traffic.
		go sl.Sample(body.Tick, debugdump.CloneTraffic(body.Traffic))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cmds)
	}
}
