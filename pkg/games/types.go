package games

import (
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// ID normalizes game identifiers, which the search backend emits as either a
// JSON string or a number depending on where the document was ingested from.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.WithStack(err)
	}
	*id = ID(n.String())
	return nil
}

// Creator identifies who published a game. Older documents carry only a name
// string while newer ones carry a full descriptor object; NameOnly records
// which shape the source used so consumers don't have to probe fields.
type Creator struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name"`
	Type             string `json:"type,omitempty"`
	HasVerifiedBadge bool   `json:"hasVerifiedBadge,omitempty"`

	NameOnly bool `json:"-"`
}

func (c *Creator) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return errors.WithStack(err)
		}
		*c = Creator{Name: name, NameOnly: true}
		return nil
	}

	type plain Creator
	var full plain
	if err := json.Unmarshal(data, &full); err != nil {
		return errors.WithStack(err)
	}
	*c = Creator(full)
	return nil
}

// Game is the display-ready record produced from one search hit. All fields
// other than FormattedName and Thumbnail are copied through from the backend
// document verbatim.
type Game struct {
	ID             ID       `json:"id"`
	RootPlaceID    *int64   `json:"rootPlaceId,omitempty"`
	Name           string   `json:"name"`
	FormattedName  string   `json:"formattedName,omitempty"`
	Description    string   `json:"description"`
	Creator        Creator  `json:"creator"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	Playing        int64    `json:"playing"`
	Visits         int64    `json:"visits"`
	MaxPlayers     *int     `json:"maxPlayers,omitempty"`
	Created        *string  `json:"created,omitempty"`
	Updated        *string  `json:"updated,omitempty"`
	Genre          *string  `json:"genre,omitempty"`
	GenreL1        *string  `json:"genre_l1,omitempty"`
	GenreL2        *string  `json:"genre_l2,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	FavoritedCount *int64   `json:"favoritedCount,omitempty"`
	Price          *int64   `json:"price"`
}

// Feature is one entry in a structured analysis feature list. Entries arrive
// as either a plain string or a {name, description} object; Text carries the
// plain shape and Name/Description the object shape.
type Feature struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Text        string `json:"-"`
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return errors.WithStack(err)
		}
		*f = Feature{Text: text}
		return nil
	}

	type plain Feature
	var named plain
	if err := json.Unmarshal(data, &named); err != nil {
		return errors.WithStack(err)
	}
	*f = Feature(named)
	return nil
}

func (f Feature) MarshalJSON() ([]byte, error) {
	if f.Text != "" {
		return json.Marshal(f.Text)
	}
	type plain Feature
	return json.Marshal(plain(f))
}

// FeatureList tolerates both an array of features and a bare feature value.
type FeatureList []Feature

func (l *FeatureList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var features []Feature
		if err := json.Unmarshal(data, &features); err != nil {
			return errors.WithStack(err)
		}
		*l = features
		return nil
	}

	var single Feature
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.WithStack(err)
	}
	*l = FeatureList{single}
	return nil
}

// AnalysisDetails is the structured analysis shape. Every field is optional.
type AnalysisDetails struct {
	TopGame    string      `json:"top_game,omitempty"`
	Features   FeatureList `json:"features,omitempty"`
	Conclusion string      `json:"conclusion,omitempty"`
}

// Analysis is the LLM analysis payload attached to an enhanced search.
// Exactly one of Text or Structured is set: Text carries the plain-string
// shape, Structured the object shape (including the variant the backend nests
// under an "analysis" key).
type Analysis struct {
	Text       string
	Structured *AnalysisDetails
}

func (a *Analysis) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return errors.WithStack(err)
		}
		*a = Analysis{Text: text}
		return nil
	}

	var aux struct {
		AnalysisDetails
		Nested *AnalysisDetails `json:"analysis"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.WithStack(err)
	}

	details := aux.AnalysisDetails
	if aux.Nested != nil {
		details = *aux.Nested
	}
	*a = Analysis{Structured: &details}
	return nil
}

func (a Analysis) MarshalJSON() ([]byte, error) {
	if a.Structured != nil {
		return json.Marshal(a.Structured)
	}
	return json.Marshal(a.Text)
}

// FilterSet narrows a search along up to four dimensions. An empty collection
// or blank value means "no constraint on this dimension", never "match
// nothing"; duplicates collapse with first-seen order preserved.
type FilterSet struct {
	Creators   []string
	GenreL1    []string
	GenreL2    []string
	MaxPlayers string
}

// request converts the filter set into its wire shape, returning nil when no
// dimension is constrained so the key is omitted from the request body
// entirely rather than sent as empty arrays.
func (f *FilterSet) request() *requestFilters {
	if f == nil {
		return nil
	}

	filters := &requestFilters{
		Creators:   dedupe(f.Creators),
		GenreL1:    dedupe(f.GenreL1),
		GenreL2:    dedupe(f.GenreL2),
		MaxPlayers: f.MaxPlayers,
	}
	if len(filters.Creators) == 0 && len(filters.GenreL1) == 0 && len(filters.GenreL2) == 0 && filters.MaxPlayers == "" {
		return nil
	}
	return filters
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(values))
	deduped := make([]string, 0, len(values))
	for _, value := range values {
		if !seen[value] {
			deduped = append(deduped, value)
			seen[value] = true
		}
	}
	return deduped
}

// SearchOutcome is the normalized search result handed to the UI.
type SearchOutcome struct {
	Results     []Game    `json:"results"`
	Total       int64     `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	Suggestions []string  `json:"suggestions"`
	LLMAnalysis *Analysis `json:"llmAnalysis,omitempty"`
}
