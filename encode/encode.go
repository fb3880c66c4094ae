// Package encode implements the node encoders (C8, §4.8): as_dict and
// as_geojson, plus a FeatureCollection wrapper for a resolved path.
package encode

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/geoparse-go/geoparse/node"
)

// AsDict returns the canonical object §4.8 describes: surface, node_type,
// morphemes (Address only), geometry and typed properties.
func AsDict(n node.Node) map[string]any {
	out := map[string]any{
		"surface":   n.Surface,
		"node_type": n.Kind.String(),
	}

	if lon, lat, ok := n.LonLat(); ok {
		out["geometry"] = map[string]any{"type": "Point", "coordinates": []float64{lon, lat}}
	} else {
		out["geometry"] = nil
	}

	switch n.Kind {
	case node.Geoword:
		out["prop"] = geowordProps(n)
	case node.Address:
		morphemes := make([]map[string]any, 0, len(n.InnerMorphemes))
		for _, inner := range n.InnerMorphemes {
			morphemes = append(morphemes, AsDict(inner))
		}
		out["morphemes"] = morphemes
		out["prop"] = addressProps(n)
	default:
		out["prop"] = nil
	}

	return out
}

func geowordProps(n node.Node) map[string]any {
	if n.Geowd == nil {
		return nil
	}
	g := n.Geowd
	return map[string]any{
		"geolod_id":             g.GeolodID,
		"body":                  g.Body,
		"prefix":                g.Prefix,
		"suffix":                g.Suffix,
		"ne_class":              g.NEClass,
		"hypernym":              g.Hypernym,
		"dictionary_id":         g.DictionaryID,
		"dictionary_identifier": g.DictionaryIdentifier,
		"valid_from":            g.ValidFrom,
		"valid_to":              g.ValidTo,
	}
}

func addressProps(n node.Node) map[string]any {
	if n.Addr == nil {
		return nil
	}
	a := n.Addr
	return map[string]any{
		"level":    a.Level,
		"fullname": a.Fullname,
	}
}

// AsGeoJSON returns the GeoJSON Feature §4.8 describes: geometry plus
// properties keyed surface/node_type/morphemes/geoword_properties or
// address_properties (omitted for Normal).
func AsGeoJSON(n node.Node) *geojson.Feature {
	var feature *geojson.Feature
	if lon, lat, ok := n.LonLat(); ok {
		feature = geojson.NewFeature(orb.Point{lon, lat})
	} else {
		feature = geojson.NewFeature(nil)
	}

	feature.Properties = geojson.Properties{
		"surface":   n.Surface,
		"node_type": n.Kind.String(),
	}

	switch n.Kind {
	case node.Geoword:
		feature.Properties["geoword_properties"] = geowordProps(n)
	case node.Address:
		morphemes := make([]map[string]any, 0, len(n.InnerMorphemes))
		for _, inner := range n.InnerMorphemes {
			morphemes = append(morphemes, AsDict(inner))
		}
		feature.Properties["morphemes"] = morphemes
		feature.Properties["address_properties"] = addressProps(n)
	}

	return feature
}

// AsFeatureCollection encodes a resolved node sequence into a single
// GeoJSON FeatureCollection (§4.7 step 7, §4 supplemented features): the
// Workflow's final output shape.
func AsFeatureCollection(path []node.Node) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range path {
		fc.Append(AsGeoJSON(n))
	}
	return fc
}
