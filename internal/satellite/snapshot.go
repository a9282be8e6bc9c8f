// Package satellite provides the environmental snapshot type consumed by the
// feature generator and the source chain that produces it: a live provider
// when available, a cached table otherwise, and documented static defaults
// as the last resort. A request never fails because satellite data is
// missing; it degrades to low-confidence defaults instead.
package satellite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Default values substituted for absent measurements. These are part of the
// model contract: the trained scorer saw exactly these substitutions.
const (
	DefaultNDVIMean       = 0.3
	DefaultLSTMeanC       = 20.0
	DefaultPrecipAnnualMm = 200.0
)

// Snapshot is a per-location point-in-time set of satellite measurements.
// Pointer fields are optional; consumers substitute documented defaults for
// nil values.
type Snapshot struct {
	Region    string `json:"region"`
	District  string `json:"district"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	NDVIMean *float64 `json:"ndvi_mean,omitempty"`
	NDVIMax  *float64 `json:"ndvi_max,omitempty"`
	NDVIMin  *float64 `json:"ndvi_min,omitempty"`
	NDVIStd  *float64 `json:"ndvi_std,omitempty"`

	LSTMeanC *float64 `json:"lst_mean_c,omitempty"`
	LSTMinC  *float64 `json:"lst_min_c,omitempty"`
	LSTMaxC  *float64 `json:"lst_max_c,omitempty"`

	PrecipitationAnnualMm *float64 `json:"precipitation_annual_mm,omitempty"`
}

// Source supplies a snapshot for a location. Implementations must bound
// external I/O with the context deadline.
type Source interface {
	Fetch(ctx context.Context, region, district string, lat, lon float64) (Snapshot, error)
}

// StaticSource always returns a snapshot with no measurements, letting
// downstream defaults apply. It is the terminal element of every chain.
type StaticSource struct{}

// Fetch returns an empty snapshot for the location. It never fails.
func (StaticSource) Fetch(_ context.Context, region, district string, lat, lon float64) (Snapshot, error) {
	return Snapshot{Region: region, District: district, Latitude: lat, Longitude: lon}, nil
}

// CachedSource serves snapshots from an in-memory table keyed by
// (region, district), typically loaded from the satellite CSV export.
// The table is replaced atomically on refresh; reads take no lock beyond
// the RWMutex and the data itself is immutable once published.
type CachedSource struct {
	mu    sync.RWMutex
	table map[string]Snapshot
}

// NewCachedSource returns an empty cache.
func NewCachedSource() *CachedSource {
	return &CachedSource{table: make(map[string]Snapshot)}
}

func cacheKey(region, district string) string {
	return region + "\x00" + district
}

// Fetch returns the cached snapshot for the location, or an error when the
// location has never been cached.
func (c *CachedSource) Fetch(_ context.Context, region, district string, lat, lon float64) (Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.table[cacheKey(region, district)]
	c.mu.RUnlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("no cached satellite data for %s/%s", region, district)
	}
	if snap.Latitude == 0 && snap.Longitude == 0 {
		snap.Latitude, snap.Longitude = lat, lon
	}
	return snap, nil
}

// Put stores or replaces the snapshot for its location.
func (c *CachedSource) Put(snap Snapshot) {
	c.mu.Lock()
	c.table[cacheKey(snap.Region, snap.District)] = snap
	c.mu.Unlock()
}

// Len reports the number of cached locations.
func (c *CachedSource) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.table)
}

// LoadCSV populates the cache from a satellite data export with a header
// row naming at least region and district columns. Unparseable numeric
// cells are treated as absent measurements rather than load failures.
func (c *CachedSource) LoadCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open satellite cache: %w", err)
	}
	defer f.Close()
	return c.loadCSV(f)
}

func (c *CachedSource) loadCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read satellite cache header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["region"]; !ok {
		return 0, fmt.Errorf("satellite cache missing region column")
	}
	if _, ok := col["district"]; !ok {
		return 0, fmt.Errorf("satellite cache missing district column")
	}

	field := func(row []string, name string) *float64 {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return nil
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil
		}
		return &v
	}

	n := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("read satellite cache row: %w", err)
		}
		snap := Snapshot{
			Region:   row[col["region"]],
			District: row[col["district"]],
		}
		if lat := field(row, "latitude"); lat != nil {
			snap.Latitude = *lat
		}
		if lon := field(row, "longitude"); lon != nil {
			snap.Longitude = *lon
		}
		snap.NDVIMean = field(row, "ndvi_mean")
		snap.NDVIMax = field(row, "ndvi_max")
		snap.NDVIMin = field(row, "ndvi_min")
		snap.NDVIStd = field(row, "ndvi_std")
		snap.LSTMeanC = field(row, "lst_mean_c")
		snap.LSTMinC = field(row, "lst_min_c")
		snap.LSTMaxC = field(row, "lst_max_c")
		snap.PrecipitationAnnualMm = field(row, "precipitation_annual_mm")
		c.Put(snap)
		n++
	}
	return n, nil
}

// ChainSource tries each source in order and returns the first success.
// The last source should be StaticSource so the chain as a whole never
// fails; failures along the way are logged, not surfaced.
type ChainSource struct {
	sources []Source
	log     *zap.Logger
}

// NewChainSource builds a chain over the given sources.
func NewChainSource(log *zap.Logger, sources ...Source) *ChainSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChainSource{sources: sources, log: log}
}

// Fetch walks the chain. It only errors when every source fails, which
// cannot happen for chains terminated by StaticSource.
func (s *ChainSource) Fetch(ctx context.Context, region, district string, lat, lon float64) (Snapshot, error) {
	var lastErr error
	for _, src := range s.sources {
		snap, err := src.Fetch(ctx, region, district, lat, lon)
		if err == nil {
			return snap, nil
		}
		lastErr = err
		s.log.Warn("satellite source failed, trying next",
			zap.String("region", region),
			zap.String("district", district),
			zap.Error(err))
	}
	return Snapshot{}, fmt.Errorf("all satellite sources failed: %w", lastErr)
}
