package api

import (
	"errors"
	"fmt"
)

// Params are the machine parameters sent with an optimize request.
type Params struct {
	// Speed is the cutting speed in mm/min.
	Speed float64
	// SetupTime is the setup time per stop in minutes.
	SetupTime float64
}

// Result is the backend's optimized traversal.
type Result struct {
	Cycle     []string `json:"ciclo"`
	Distance  float64  `json:"distancia"`
	CutTime   float64  `json:"tempo_corte"`
	SetupTime float64  `json:"tempo_setup"`
	TotalTime float64  `json:"tempo_total"`
	Program   string   `json:"programa_cnc"`
	Stats     Stats    `json:"estatisticas"`
}

// Stats summarises an optimized traversal.
type Stats struct {
	VerticesVisited   int `json:"vertices_visitados"`
	SegmentsTraversed int `json:"trajetorias_percorridas"`
}

// Error is a mutation the backend rejected with a non-success status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}

// IsRejected reports whether err is a rejection from the backend, as opposed
// to a transport or decoding failure.
func IsRejected(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// Message returns the text to show the user for err: the backend's message
// for rejections, the error string otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
