package main

import (
	_ "embed"
	"net/http"
	"sync"

	mst "github.com/flywave/go-mst"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/flywave/go-simscene/streamline"
)

//go:embed index.html
var indexHTML []byte

// Limits for the polyline payload pushed to the browser canvas. The full
// trace set lives server side; the preview only needs enough lines to draw.
const (
	maxPreviewLines  = 120
	maxPreviewPoints = 150
)

type seedMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type legendMsg struct {
	Title  string    `json:"title"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Ticks  []float64 `json:"ticks"`
	Labels []string  `json:"labels"`
}

type flowMsg struct {
	Type   string         `json:"type"`
	Kx     float64        `json:"kx"`
	Ky     float64        `json:"ky"`
	Bounds [6]float64     `json:"bounds"`
	Legend legendMsg      `json:"legend"`
	Lines  [][][3]float64 `json:"lines"`
	Speeds [][]float64    `json:"speeds"`
}

// Server owns the single pipeline. Each websocket connection runs in its
// own goroutine, so the pipeline's single-writer discipline is kept by mu.
type Server struct {
	mu       sync.Mutex
	pipe     *streamline.Pipeline
	log      *zap.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

func NewServer(pipe *streamline.Pipeline, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{pipe: pipe, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/tube.mst", s.handleTube)
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(s.currentFlow()); err != nil {
		s.log.Warn("websocket hello failed", zap.Error(err))
		return
	}
	for {
		var msg seedMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "seed" {
			continue
		}
		flow, err := s.reseed(msg.X, msg.Y)
		if err != nil {
			s.log.Error("trace update failed", zap.Error(err))
			return
		}
		if err := conn.WriteJSON(flow); err != nil {
			return
		}
	}
}

func (s *Server) handleTube(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tube := s.pipe.Tube()
	s.mu.Unlock()
	if tube == nil {
		http.Error(w, "no tube yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="wind_tube.mst"`)
	mst.MeshMarshal(w, tube)
}

func (s *Server) reseed(kx, ky float64) (flowMsg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pipe.Update(kx, ky); err != nil {
		return flowMsg{}, err
	}
	return s.flowLocked(), nil
}

func (s *Server) currentFlow() flowMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flowLocked()
}

func (s *Server) flowLocked() flowMsg {
	kx, ky := s.pipe.Params()
	legend := s.pipe.Legend()
	bounds := s.pipe.Field().Bounds()
	msg := flowMsg{
		Type:   "flow",
		Kx:     kx,
		Ky:     ky,
		Bounds: *bounds.Array(),
		Legend: legendMsg{
			Title:  legend.Title,
			Min:    legend.Ramp.Min,
			Max:    legend.Ramp.Max,
			Ticks:  legend.Ticks(),
			Labels: legend.Labels(),
		},
	}

	lines := s.pipe.Lines()
	lineStride := stride(len(lines), maxPreviewLines)
	for i := 0; i < len(lines); i += lineStride {
		line := lines[i]
		pointStride := stride(len(line.Points), maxPreviewPoints)
		pts := make([][3]float64, 0, len(line.Points)/pointStride+1)
		speeds := make([]float64, 0, cap(pts))
		for j := 0; j < len(line.Points); j += pointStride {
			pts = append(pts, line.Points[j])
			speeds = append(speeds, line.Speeds[j])
		}
		msg.Lines = append(msg.Lines, pts)
		msg.Speeds = append(msg.Speeds, speeds)
	}
	return msg
}

func stride(n, limit int) int {
	if n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}
