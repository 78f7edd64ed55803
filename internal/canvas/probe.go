package canvas

import (
	"errors"
	"sync"
)

var ErrUnavailable = errors.New("icon rendering support is unavailable")

type Status int

const (
	Unavailable Status = iota
	Available
)

func (s Status) String() string {
	if s == Available {
		return "available"
	}
	return "unavailable"
}

// Availability is the result of the one-time startup check of the drawing
// backend.
type Availability struct {
	Status  Status
	Backend string
	Reason  string
}

func (a Availability) OK() bool {
	return a.Status == Available
}

// Err returns nil when the backend is usable and ErrUnavailable wrapped with
// the reason otherwise.
func (a Availability) Err() error {
	if a.OK() {
		return nil
	}
	if a.Reason == "" {
		return ErrUnavailable
	}
	return errors.Join(ErrUnavailable, errors.New(a.Reason))
}

var (
	probeOnce   sync.Once
	probeResult Availability
)

func Probe() Availability {
	probeOnce.Do(func() {
		probeResult = probeBackend()
	})
	return probeResult
}
