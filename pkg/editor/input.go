package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/geometry"
)

// Machine defaults used when the parameters input is blank or invalid.
const (
	DefaultSpeed     = 100
	DefaultSetupTime = 0.5
)

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseVertex reads "x y" or "id x y".
func ParseVertex(input string) (CreateVertex, error) {
	f := strings.Fields(input)
	var id string
	switch len(f) {
	case 2:
	case 3:
		id, f = f[0], f[1:]
	default:
		return CreateVertex{}, invalid("enter coordinates as \"x y\" or \"name x y\"")
	}
	x, errX := parseCoord(f[0])
	y, errY := parseCoord(f[1])
	if errX != nil || errY != nil {
		return CreateVertex{}, invalid("enter valid coordinates")
	}
	return CreateVertex{ID: id, At: geometry.Pt(x, y)}, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// ParseEdge reads "from to".
func ParseEdge(input string) (CreateEdge, error) {
	f := strings.Fields(input)
	if len(f) != 2 {
		return CreateEdge{}, invalid("select two points")
	}
	if f[0] == f[1] {
		return CreateEdge{}, invalid("select two different points")
	}
	return CreateEdge{From: f[0], To: f[1]}, nil
}

// ParseMachine reads "speed setup". Missing, non-numeric or non-positive
// values fall back to the defaults.
func ParseMachine(input string, fallback api.Params) api.Params {
	if fallback.Speed <= 0 {
		fallback.Speed = DefaultSpeed
	}
	if fallback.SetupTime <= 0 {
		fallback.SetupTime = DefaultSetupTime
	}
	p := fallback
	f := strings.Fields(input)
	if len(f) > 0 {
		p.Speed = positiveOr(f[0], DefaultSpeed)
	}
	if len(f) > 1 {
		p.SetupTime = positiveOr(f[1], DefaultSetupTime)
	}
	return p
}

func positiveOr(s string, def float64) float64 {
	v, err := parseCoord(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
