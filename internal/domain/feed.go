package domain

// Kind is the flavour of a post, chosen by the composer tab.
type Kind string

const (
	KindText    Kind = "text"
	KindArticle Kind = "article"
	KindMedia   Kind = "media"
	KindRepost  Kind = "repost"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

type Media struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"type"`
}

// Counts are denormalized and only ever changed by social actions.
// They are never recomputed from the number of materialized comments.
type Counts struct {
	Comments int `json:"comments"`
	Reposts  int `json:"reposts"`
	Likes    int `json:"likes"`
}

// Post is a node of the feed tree. Comments are children, Quoted is the
// embedded original of a repost.
type Post struct {
	ID           int64   `json:"id"`
	AuthorHandle string  `json:"handle"`
	AuthorName   string  `json:"name"`
	AuthorAvatar string  `json:"avatar"`
	CreatedAt    string  `json:"time"`
	Body         string  `json:"text"`
	Kind         Kind    `json:"type"`
	Media        *Media  `json:"media,omitempty"`
	Counts       Counts  `json:"stats"`
	Comments     []*Post `json:"comments"`
	Quoted       *Post   `json:"quoted,omitempty"`
}

// Author is the identity snapshot copied onto posts at creation time.
type Author struct {
	Handle string
	Name   string
	Avatar string
}
