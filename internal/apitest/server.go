// Package apitest serves an in-memory cutting-path backend over httptest for
// tests. It speaks the real backend's wire format and lets tests script
// rejections, dropped connections and inconsistent successes.
package apitest

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

// Route names used by Fail and Calls.
const (
	RouteGraph        = "GET /api/grafo"
	RouteCreateVertex = "POST /api/vertice"
	RouteDeleteVertex = "DELETE /api/vertice"
	RouteCreateEdge   = "POST /api/aresta"
	RouteOptimize     = "POST /api/otimizar"
	RouteClear        = "POST /api/limpar"
	RouteExample      = "POST /api/exemplo"
)

type failure struct {
	status  int
	message string
}

// Server is a fake backend.
type Server struct {
	mu        sync.Mutex
	vertices  map[string]geometry.Point
	edges     []graph.Edge
	cycle     []string
	failures  map[string]failure
	calls     map[string]int
	dropEdges bool
	named     bool

	ts *httptest.Server
}

// New starts a fake backend. Call Close when done.
func New() *Server {
	s := &Server{
		vertices: make(map[string]geometry.Point),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/grafo", s.handleGraph)
	mux.HandleFunc("/api/vertice", s.handleVertex)
	mux.HandleFunc("/api/vertice/", s.handleVertex)
	mux.HandleFunc("/api/aresta", s.handleEdge)
	mux.HandleFunc("/api/otimizar", s.handleOptimize)
	mux.HandleFunc("/api/limpar", s.handleClear)
	mux.HandleFunc("/api/exemplo/", s.handleExample)
	s.ts = httptest.NewServer(mux)
	return s
}

// URL is the base address to hand to api.NewClient.
func (s *Server) URL() string {
	return s.ts.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.ts.Close()
}

// Fail makes route answer with status and message until Heal is called. A
// zero status drops the connection without answering.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Heal removes a scripted failure.
func (s *Server) Heal(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// DropEdges makes edge creation answer success without storing the edge.
func (s *Server) DropEdges(drop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropEdges = drop
}

// NamedEdges switches the edge encoding to {"origem","destino"} objects.
func (s *Server) NamedEdges(named bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.named = named
}

// SetCycle scripts the traversal returned by the optimize route.
func (s *Server) SetCycle(cycle ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle = append([]string(nil), cycle...)
}

// Calls returns how many requests route has received.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Seed replaces the server's graph.
func (s *Server) Seed(snap graph.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vertices = make(map[string]geometry.Point, len(snap.Vertices))
	for id, p := range snap.Vertices {
		s.vertices[id] = p
	}
	s.edges = append([]graph.Edge(nil), snap.Edges...)
}

// Snapshot returns the server's graph.
func (s *Server) Snapshot() graph.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() graph.Snapshot {
	snap := graph.Snapshot{
		Vertices: make(map[string]geometry.Point, len(s.vertices)),
		Edges:    append([]graph.Edge(nil), s.edges...),
	}
	for id, p := range s.vertices {
		snap.Vertices[id] = p
	}
	return snap
}

// begin counts the call and applies a scripted failure. It returns false
// when the request has already been answered.
func (s *Server) begin(w http.ResponseWriter, route string) bool {
	s.calls[route]++
	f, ok := s.failures[route]
	if !ok {
		return true
	}
	if f.status == 0 {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
				return false
			}
		}
		f.status = http.StatusBadGateway
	}
	writeJSON(w, f.status, map[string]string{"erro": f.message})
	return false
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begin(w, RouteGraph) {
		return
	}
	s.writeGraph(w, http.StatusOK)
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		if !s.begin(w, RouteCreateVertex) {
			return
		}
		var body struct {
			Name string   `json:"nome"`
			X    *float64 `json:"x"`
			Y    *float64 `json:"y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.X == nil || body.Y == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "invalid coordinates"})
			return
		}
		name := body.Name
		if name == "" {
			name = fmt.Sprintf("P%d", len(s.vertices)+1)
		}
		if _, exists := s.vertices[name]; exists {
			writeJSON(w, http.StatusBadRequest, map[string]string{"erro": fmt.Sprintf("Point '%s' already exists!", name)})
			return
		}
		s.vertices[name] = geometry.Pt(*body.X, *body.Y)
		s.writeGraph(w, http.StatusOK)

	case http.MethodDelete:
		if !s.begin(w, RouteDeleteVertex) {
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/api/vertice/")
		if _, exists := s.vertices[name]; !exists {
			writeJSON(w, http.StatusNotFound, map[string]string{"erro": fmt.Sprintf("Point '%s' not found!", name)})
			return
		}
		delete(s.vertices, name)
		kept := s.edges[:0]
		for _, e := range s.edges {
			if !e.Touches(name) {
				kept = append(kept, e)
			}
		}
		s.edges = kept
		s.writeGraph(w, http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.begin(w, RouteCreateEdge) {
		return
	}
	var body struct {
		From string `json:"origem"`
		To   string `json:"destino"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	_, okFrom := s.vertices[body.From]
	_, okTo := s.vertices[body.To]
	if !okFrom || !okTo {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "Points not found!"})
		return
	}
	if !s.dropEdges {
		s.edges = append(s.edges, graph.Edge{From: body.From, To: body.To})
	}
	s.writeGraph(w, http.StatusOK)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begin(w, RouteOptimize) {
		return
	}
	var body struct {
		Speed     float64 `json:"velocidade"`
		SetupTime float64 `json:"tempo_setup"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if len(s.vertices) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "Empty graph"})
		return
	}
	if len(s.cycle) < 2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "No cycle found"})
		return
	}

	dist := 0.0
	for i := 0; i+1 < len(s.cycle); i++ {
		dist += s.vertices[s.cycle[i]].Distance(s.vertices[s.cycle[i+1]])
	}
	cut := 0.0
	if body.Speed > 0 {
		cut = dist / body.Speed
	}
	var program strings.Builder
	for i, id := range s.cycle {
		p := s.vertices[id]
		fmt.Fprintf(&program, "N%03d G01 X%.2f Y%.2f\n", i, p.X, p.Y)
	}
	program.WriteString("M30")

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":      true,
		"ciclo":        s.cycle,
		"distancia":    dist,
		"tempo_corte":  cut,
		"tempo_setup":  body.SetupTime,
		"tempo_total":  cut + body.SetupTime,
		"programa_cnc": program.String(),
		"estatisticas": map[string]int{
			"vertices_visitados":      len(s.cycle),
			"trajetorias_percorridas": len(s.cycle) - 1,
		},
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begin(w, RouteClear) {
		return
	}
	s.vertices = make(map[string]geometry.Point)
	s.edges = nil
	writeJSON(w, http.StatusOK, map[string]any{"sucesso": true, "grafo": s.wireGraph()})
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begin(w, RouteExample) {
		return
	}
	s.vertices = make(map[string]geometry.Point)
	s.edges = nil

	const cx, cy = 400.0, 300.0
	connect := func(a, b string) { s.edges = append(s.edges, graph.Edge{From: a, To: b}) }

	switch strings.TrimPrefix(r.URL.Path, "/api/exemplo/") {
	case "retangular":
		s.vertices["P1"] = geometry.Pt(cx-25, cy-15)
		s.vertices["P2"] = geometry.Pt(cx+25, cy-15)
		s.vertices["P3"] = geometry.Pt(cx+25, cy+15)
		s.vertices["P4"] = geometry.Pt(cx-25, cy+15)
		connect("P1", "P2")
		connect("P2", "P3")
		connect("P3", "P4")
		connect("P4", "P1")
	case "estrela":
		for i := 0; i < 5; i++ {
			outer := 2*math.Pi*float64(i)/5 - math.Pi/2
			inner := outer + math.Pi/5
			s.vertices[fmt.Sprintf("E%d", i+1)] = geometry.Pt(cx+80*math.Cos(outer), cy+80*math.Sin(outer))
			s.vertices[fmt.Sprintf("I%d", i+1)] = geometry.Pt(cx+40*math.Cos(inner), cy+40*math.Sin(inner))
		}
		for i := 0; i < 5; i++ {
			connect(fmt.Sprintf("E%d", i+1), fmt.Sprintf("I%d", i+1))
			connect(fmt.Sprintf("I%d", i+1), fmt.Sprintf("E%d", (i+1)%5+1))
		}
	case "grade":
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				s.vertices[fmt.Sprintf("P%d%d", i, j)] = geometry.Pt(cx-60+float64(i)*60, cy-60+float64(j)*60)
			}
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if i < 2 {
					connect(fmt.Sprintf("P%d%d", i, j), fmt.Sprintf("P%d%d", i+1, j))
				}
				if j < 2 {
					connect(fmt.Sprintf("P%d%d", i, j), fmt.Sprintf("P%d%d", i, j+1))
				}
			}
		}
		connect("P00", "P22")
		connect("P02", "P20")
	}
	s.writeGraph(w, http.StatusOK)
}

func (s *Server) wireGraph() map[string]any {
	vertices := make(map[string]map[string]float64, len(s.vertices))
	for id, p := range s.vertices {
		vertices[id] = map[string]float64{"x": p.X, "y": p.Y}
	}
	edges := make([]any, 0, len(s.edges))
	for _, e := range s.edges {
		if s.named {
			edges = append(edges, map[string]string{"origem": e.From, "destino": e.To})
		} else {
			edges = append(edges, []string{e.From, e.To})
		}
	}
	return map[string]any{"vertices": vertices, "arestas": edges}
}

// status mirrors the backend's readiness check closely enough for tests:
// non-empty and every vertex of even degree.
func (s *Server) status() []any {
	if len(s.vertices) == 0 {
		return []any{false, "Empty graph"}
	}
	degree := make(map[string]int)
	for _, e := range s.edges {
		degree[e.From]++
		degree[e.To]++
	}
	var odd []string
	for id := range s.vertices {
		if degree[id]%2 != 0 {
			odd = append(odd, id)
		}
	}
	if len(odd) > 0 {
		sort.Strings(odd)
		return []any{false, fmt.Sprintf("Vertices with odd degree: %v", odd)}
	}
	return []any{true, "Graph is Eulerian"}
}

func (s *Server) writeGraph(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]any{
		"sucesso": true,
		"grafo":   s.wireGraph(),
		"status":  s.status(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
