package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/ChristopherRabotin/hohmann"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// server hosts an engine over HTTP. The engine is single writer, so every
// request holds mu for its whole duration.
type server struct {
	mu     sync.Mutex
	engine *hohmann.Engine
	logger kitlog.Logger
}

type statusResponse struct {
	Phase  hohmann.Phase         `json:"phase"`
	Radius float64               `json:"radius"`
	Target float64               `json:"target"`
	Step   uint64                `json:"step"`
	Plan   *hohmann.TransferPlan `json:"plan,omitempty"`
	Sample *hohmann.Sample       `json:"sample,omitempty"`
	Arc    []hohmann.Vec2        `json:"arc,omitempty"`
}

func newHandler(engine *hohmann.Engine, gatherer prometheus.Gatherer, logger kitlog.Logger) http.Handler {
	s := &server{engine: engine, logger: kitlog.With(logger, "subsys", "http")}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /target", s.target)
	mux.HandleFunc("POST /start", s.start)
	mux.HandleFunc("POST /reset", s.reset)
	mux.HandleFunc("GET /tick", s.tick)
	mux.HandleFunc("GET /status", s.status)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (s *server) target(w http.ResponseWriter, r *http.Request) {
	radius, ok := s.radiusParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.SetTargetRadius(radius); err != nil {
		s.fail(w, err)
		return
	}
	s.writeStatus(w, nil)
}

func (s *server) start(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if r.URL.Query().Has("r") {
		radius, ok := s.radiusParam(w, r)
		if !ok {
			return
		}
		err = s.engine.StartTransferTo(radius)
	} else {
		err = s.engine.StartTransfer()
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeStatus(w, nil)
}

func (s *server) reset(w http.ResponseWriter, r *http.Request) {
	radius, ok := s.radiusParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Reset(radius); err != nil {
		s.fail(w, err)
		return
	}
	s.writeStatus(w, nil)
}

func (s *server) tick(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil || n < 1 {
			http.Error(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var last hohmann.Sample
	for i := 0; i < n; i++ {
		sample, err := s.engine.Tick()
		if err != nil {
			s.fail(w, err)
			return
		}
		last = sample
	}
	s.writeStatus(w, &last)
}

func (s *server) status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeStatus(w, nil)
}

// radiusParam reads the radius, in AU, from the r query parameter.
func (s *server) radiusParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	au, err := strconv.ParseFloat(r.URL.Query().Get("r"), 64)
	if err != nil {
		http.Error(w, "r must be a radius in AU", http.StatusBadRequest)
		return 0, false
	}
	return au * hohmann.AU, true
}

// writeStatus must be called with mu held.
func (s *server) writeStatus(w http.ResponseWriter, sample *hohmann.Sample) {
	st := statusResponse{
		Phase:  s.engine.Phase(),
		Radius: s.engine.Radius(),
		Target: s.engine.Target(),
		Step:   s.engine.Step(),
		Sample: sample,
	}
	if plan, ok := s.engine.TransferPlan(); ok {
		st.Plan = &plan
		if arc, err := s.engine.TransferArc(64); err == nil {
			st.Arc = arc
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		s.logger.Log("level", "warning", "err", err)
	}
}

func (s *server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, hohmann.ErrInvalidCommand):
		code = http.StatusConflict
	case errors.Is(err, hohmann.ErrConfiguration):
		code = http.StatusBadRequest
	}
	s.logger.Log("level", "notice", "code", code, "err", err)
	http.Error(w, err.Error(), code)
}
