package models

import "time"

// Post is a short article published under a category.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar"`
	AuthorUID    string    `json:"authorUid"`
	Likes        int       `json:"likes"`
	// Comments is a cached counter, maintained alongside comment inserts
	// rather than derived from the comments table on read.
	Comments  int       `json:"comments"`
	LikedBy   []string  `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedByUser reports whether uid is in the post's like-membership set.
func (p *Post) LikedByUser(uid string) bool {
	for _, u := range p.LikedBy {
		if u == uid {
			return true
		}
	}
	return false
}

// FeedSort selects the feed ordering.
type FeedSort string

const (
	// SortLatest orders by creation time, newest first.
	SortLatest FeedSort = "latest"
	// SortTrending orders by like count, creation time as tie-break.
	SortTrending FeedSort = "trending"
)
