package calendar

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrInvalidTimezone is returned for empty, process-local or unknown IANA zone names.
// Callers never get a silent fallback to UTC.
var ErrInvalidTimezone = errors.New("invalid timezone")

var zoneCache sync.Map // name -> *time.Location

// LoadZone resolves an IANA zone name such as "America/New_York".
// Successful lookups are cached for the lifetime of the process.
func LoadZone(name string) (*time.Location, error) {
	if cached, ok := zoneCache.Load(name); ok {
		return cached.(*time.Location), nil
	}

	trimmed := strings.TrimSpace(name)
	// time.LoadLocation maps "" to UTC and "Local" to the host zone; neither names a place.
	if trimmed == "" || trimmed != name || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}

	zoneCache.Store(name, loc)
	return loc, nil
}
