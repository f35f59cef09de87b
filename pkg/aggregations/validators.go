package aggregations

// Bucket is one facet value with its document count. From and To are only
// present on the player-count buckets, which are range facets.
type Bucket struct {
	Key      string   `json:"key"`
	DocCount int64    `json:"doc_count"`
	From     *float64 `json:"from,omitempty"`
	To       *float64 `json:"to,omitempty"`
}

// BucketList wraps a facet's buckets the way the backend nests them.
type BucketList struct {
	Buckets []Bucket `json:"buckets"`
}

// AggregationSet is the full facet payload the filter panel renders.
type AggregationSet struct {
	Creators   BucketList `json:"creators"`
	GenreL1    BucketList `json:"genre_l1"`
	GenreL2    BucketList `json:"genre_l2"`
	MaxPlayers BucketList `json:"max_players"`
}
