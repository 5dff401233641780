package veezi

// Session is one screening as returned by the Veezi web sessions API.
type Session struct {
	ID         int64  `json:"Id"`
	FilmID     string `json:"FilmId"`
	Title      string `json:"Title"`
	ScreenName string `json:"ScreenName"`
	// FeatureStartTime is a local wall-clock timestamp without offset,
	// e.g. "2026-08-31T19:30:00".
	FeatureStartTime string `json:"FeatureStartTime"`
	// Duration is the feature length in minutes.
	Duration int `json:"Duration"`
	SalesVia struct {
		WWW bool `json:"WWW"`
	} `json:"SalesVia"`
}
