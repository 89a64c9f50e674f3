package region

import "sync"

// Snapshot is a consistent copy of the store: the rectangles together with the
// scale factor they were published with.
type Snapshot struct {
	Rects []Rect  `json:"rects"`
	Scale float64 `json:"scale"`
}

// Contains tests a point given in logical pixels.
func (s Snapshot) Contains(x, y float64) bool {
	return Contains(s.Rects, x, y)
}

// ContainsPhysical tests a point given in device pixels. The rectangles are
// scaled up rather than the point scaled down.
func (s Snapshot) ContainsPhysical(x, y float64) bool {
	for _, r := range s.Rects {
		if r.Scale(s.Scale).Contains(x, y) {
			return true
		}
	}
	return false
}

// DeviceRects rasterizes every rectangle at the snapshot scale. The result is
// never nil, so an empty store yields an empty (not absent) shape.
func (s Snapshot) DeviceRects() []DeviceRect {
	out := make([]DeviceRect, 0, len(s.Rects))
	for _, r := range s.Rects {
		out = append(out, r.Device(s.Scale))
	}
	return out
}

// Empty reports whether the window is entirely pass-through.
func (s Snapshot) Empty() bool {
	return len(s.Rects) == 0
}

// Store holds the current hit rectangles and scale factor for one window.
// Both values are replaced together under one lock.
type Store struct {
	mu    sync.RWMutex
	rects []Rect
	scale float64
}

// NewStore creates an empty store (fully click-through) at scale 1.
func NewStore() *Store {
	return &Store{scale: 1}
}

// Update replaces the rectangles and scale factor.
func (s *Store) Update(rects []Rect, scale float64) {
	cp := make([]Rect, len(rects))
	copy(cp, rects)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rects = cp
	s.scale = scale
}

// Read returns a copy of the current contents.
func (s *Store) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]Rect, len(s.rects))
	copy(cp, s.rects)
	return Snapshot{Rects: cp, Scale: s.scale}
}

// Contains tests a logical point without copying the rectangles.
func (s *Store) Contains(x, y float64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Contains(s.rects, x, y)
}
