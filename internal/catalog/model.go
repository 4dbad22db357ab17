// Package catalog proxies the TMDB movie catalog. The access token stays
// server-side; handlers expose a reshaped, read-only slice of the API.
package catalog

// Movie is a catalog list entry.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
}

// MovieDetail is a full movie record with trailers appended.
type MovieDetail struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
	Videos       struct {
		Results []Video `json:"results"`
	} `json:"videos"`
}

// Genre is a catalog genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a trailer or clip attached to a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Review is a catalog review, flattened to the fields clients use.
type Review struct {
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Rating  *float64 `json:"rating,omitempty"`
}

// Provider is a streaming provider offering a movie.
type Provider struct {
	ID   int    `json:"provider_id"`
	Name string `json:"provider_name"`
	Logo string `json:"logo_path"`
}

// ListKind selects which catalog list to fetch.
type ListKind string

const (
	ListNew         ListKind = "new"
	ListPopular     ListKind = "popular"
	ListHighlyRated ListKind = "highly-rated"
	ListDiscover    ListKind = "discover"
)
