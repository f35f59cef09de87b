package games

// SearchParams represents the query parameters accepted by the search
// endpoint. The list params arrive comma-joined because that's how the filter
// panel encodes multi-selects into the page URL.
type SearchParams struct {
	Query    string `json:"query" query:"query" mod:"trim" validate:"max=200"`
	Page     int    `json:"page" query:"page" default:"1"`
	Enhance  bool   `json:"enhance" query:"enhance"`
	Creators string `json:"creators" query:"creators"`
	GenreL1  string `json:"genre_l1" query:"genre_l1"`
	GenreL2  string `json:"genre_l2" query:"genre_l2"`
	Players  string `json:"players" query:"players" validate:"omitempty,playerrange"`
}
