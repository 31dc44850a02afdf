package opencage

import "github.com/dstrelkov/jobdeck/internal/entities"

type geocodeResponse struct {
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	TotalResults int      `json:"total_results"`
	Results      []result `json:"results"`
}

type result struct {
	Formatted string `json:"formatted"`
	Geometry  struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"geometry"`
	Components components `json:"components"`
}

type components struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	CountryCode string `json:"country_code"`
}

func (r result) toGeoPoint() entities.GeoPoint {
	return entities.GeoPoint{
		Latitude:         r.Geometry.Lat,
		Longitude:        r.Geometry.Lng,
		FormattedAddress: r.Formatted,
		City:             r.Components.city(),
		State:            r.Components.State,
		ZipCode:          r.Components.Postcode,
		CountryCode:      r.Components.CountryCode,
	}
}

// The provider reports the locality under city, town or village depending on
// the place type; the first non-empty one wins.
func (c components) city() string {
	if c.City != "" {
		return c.City
	}
	if c.Town != "" {
		return c.Town
	}
	return c.Village
}
