package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

// wirePoint is a vertex position as the backend sends it.
type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// wireEdge accepts every edge shape the backend has produced: a two element
// array, {"origem","destino"} or {"from","to"}. Shapes it cannot read leave
// ok false and are dropped by the caller.
type wireEdge struct {
	edge graph.Edge
	ok   bool
}

func (w *wireEdge) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return nil
		}
		if len(pair) == 2 && pair[0] != "" && pair[1] != "" {
			w.edge = graph.Edge{From: pair[0], To: pair[1]}
			w.ok = true
		}
	case '{':
		var named struct {
			Origem  string `json:"origem"`
			Destino string `json:"destino"`
			From    string `json:"from"`
			To      string `json:"to"`
		}
		if err := json.Unmarshal(data, &named); err != nil {
			return nil
		}
		switch {
		case named.Origem != "" && named.Destino != "":
			w.edge = graph.Edge{From: named.Origem, To: named.Destino}
			w.ok = true
		case named.From != "" && named.To != "":
			w.edge = graph.Edge{From: named.From, To: named.To}
			w.ok = true
		}
	}
	return nil
}

// wireStatus decodes the backend's [ready, message] tuple.
type wireStatus struct {
	status graph.Status
}

func (w *wireStatus) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("status tuple: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("status tuple: expected 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &w.status.Ready); err != nil {
		return fmt.Errorf("status ready flag: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &w.status.Message); err != nil {
		return fmt.Errorf("status message: %w", err)
	}
	w.status.Known = true
	return nil
}

type wireGraph struct {
	Vertices map[string]wirePoint `json:"vertices"`
	Edges    []wireEdge           `json:"arestas"`
}

// graphResponse is the envelope of every call that returns a graph.
type graphResponse struct {
	Graph  *wireGraph  `json:"grafo"`
	Status *wireStatus `json:"status"`
}

// snapshot normalizes the envelope into the internal representation.
func (r *graphResponse) snapshot() graph.Snapshot {
	snap := graph.Snapshot{Vertices: make(map[string]geometry.Point)}
	if r.Status != nil {
		snap.Status = r.Status.status
	}
	if r.Graph == nil {
		return snap
	}
	for id, p := range r.Graph.Vertices {
		snap.Vertices[id] = geometry.Pt(p.X, p.Y)
	}
	for i, e := range r.Graph.Edges {
		if !e.ok {
			log.Printf("[api] ignoring edge #%d with unrecognised shape", i)
			continue
		}
		snap.Edges = append(snap.Edges, e.edge)
	}
	return snap
}

// errorBody is the backend's failure payload.
type errorBody struct {
	Erro    string `json:"erro"`
	Message string `json:"message"`
}

type vertexRequest struct {
	Name string  `json:"nome,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type edgeRequest struct {
	From string `json:"origem"`
	To   string `json:"destino"`
}

type optimizeRequest struct {
	Speed     float64 `json:"velocidade"`
	SetupTime float64 `json:"tempo_setup"`
}
