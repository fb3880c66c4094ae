package filter

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"

	"github.com/geoparse-go/geoparse/errs"
	"github.com/geoparse-go/geoparse/node"
)

// region is a set of polygon rings evaluated with github.com/golang/geo/s2's
// spherical point-in-polygon test. Holes are not subtracted (the first ring
// of every Polygon/MultiPolygon member is treated as the boundary), which
// is sufficient for the administrative-boundary and bounding-area shapes
// these filters are built to consume.
type region struct {
	loops []*s2.Loop
}

func (r region) contains(lon, lat float64) bool {
	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	for _, l := range r.loops {
		if l.ContainsPoint(pt) {
			return true
		}
	}
	return false
}

// buildRegion resolves a filter's geometry input (§4.4.3: a GeoJSON string,
// a parsed go.geojson object, or a URL dereferenced once here) into a
// region.
func buildRegion(input any) (region, error) {
	geom, err := resolveGeometry(input)
	if err != nil {
		return region{}, err
	}
	return region{loops: loopsOf(geom)}, nil
}

func resolveGeometry(input any) (*geojson.Geometry, error) {
	switch v := input.(type) {
	case string:
		body := v
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			fetched, err := fetchURL(v)
			if err != nil {
				return nil, errs.Wrap(errs.ErrExternalFetch, err, "fetching geometry from "+v)
			}
			body = fetched
		}
		return geojson.UnmarshalGeometry([]byte(body))
	case *geojson.Geometry:
		return v, nil
	case *geojson.Feature:
		return v.Geometry, nil
	case *geojson.FeatureCollection:
		geoms := make([]*geojson.Geometry, 0, len(v.Features))
		for _, f := range v.Features {
			if f.Geometry != nil {
				geoms = append(geoms, f.Geometry)
			}
		}
		return &geojson.Geometry{Type: "GeometryCollection", Geometries: geoms}, nil
	default:
		return nil, fmt.Errorf("filter: unsupported geometry input type %T", input)
	}
}

func fetchURL(url string) (string, error) {
	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func loopsOf(g *geojson.Geometry) []*s2.Loop {
	if g == nil {
		return nil
	}
	var loops []*s2.Loop
	switch {
	case g.IsPolygon():
		if loop := loopFromRing(g.Polygon); loop != nil {
			loops = append(loops, loop)
		}
	case g.IsMultiPolygon():
		for _, poly := range g.MultiPolygon {
			if loop := loopFromRing(poly); loop != nil {
				loops = append(loops, loop)
			}
		}
	case g.IsGeometryCollection():
		for _, sub := range g.Geometries {
			loops = append(loops, loopsOf(sub)...)
		}
	}
	return loops
}

func loopFromRing(rings [][][]float64) *s2.Loop {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return nil
	}
	pts := make([]s2.Point, 0, len(rings[0]))
	for _, coord := range rings[0] {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(coord[1], coord[0])))
	}
	return s2.LoopFromPoints(pts)
}

// GeoContainsFilter keeps a geoword/address candidate iff its point lies
// inside the configured geometry; candidates without a point always pass
// (§4.4.3).
type GeoContainsFilter struct {
	Region region
}

// NewGeoContainsFilter resolves input once at construction (§4.4.3).
func NewGeoContainsFilter(input any) (*GeoContainsFilter, error) {
	r, err := buildRegion(input)
	if err != nil {
		return nil, err
	}
	return &GeoContainsFilter{Region: r}, nil
}

// Apply implements Filter (§4.4.3, policy convert_to_normal).
func (f *GeoContainsFilter) Apply(lat node.Lattice) node.Lattice {
	return applyPredicate(lat, ConvertToNormal, func(n node.Node) bool {
		lon, latp, ok := n.LonLat()
		if !ok {
			return true
		}
		return f.Region.contains(lon, latp)
	})
}

// GeoDisjointFilter is GeoContainsFilter's negation (§4.4.3).
type GeoDisjointFilter struct {
	Region region
}

// NewGeoDisjointFilter resolves input once at construction (§4.4.3).
func NewGeoDisjointFilter(input any) (*GeoDisjointFilter, error) {
	r, err := buildRegion(input)
	if err != nil {
		return nil, err
	}
	return &GeoDisjointFilter{Region: r}, nil
}

// Apply implements Filter (§4.4.3, policy convert_to_normal).
func (f *GeoDisjointFilter) Apply(lat node.Lattice) node.Lattice {
	return applyPredicate(lat, ConvertToNormal, func(n node.Node) bool {
		lon, latp, ok := n.LonLat()
		if !ok {
			return true
		}
		return !f.Region.contains(lon, latp)
	})
}
