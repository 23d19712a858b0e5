package fixture

import (
	"fmt"

	"github.com/vidshare/fixture-seeder/internal/db"
	seedErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/schema"
)

// Dataset is the arena holding every fixture record, one ordered slice per
// kind. Records reference each other only through author-assigned ids.
type Dataset struct {
	Users           []db.User
	Logins          []db.Login
	Avatars         []db.Avatar
	Categories      []db.Category
	Videos          []db.Video
	Hashtags        []db.Hashtag
	VideoHashtags   []db.VideoHashtag
	Comments        []db.Comment
	CommentLikes    []db.CommentLike
	CommentDislikes []db.CommentDislike
	VideoLikes      []db.VideoLike
	VideoDislikes   []db.VideoDislike
	Subscriptions   []db.Subscription
}

// Records returns the records of kind in authoring order. The elements point
// into the arena.
func (d *Dataset) Records(kind schema.Kind) []db.Record {
	switch kind {
	case schema.User:
		return pointers(d.Users)
	case schema.Login:
		return pointers(d.Logins)
	case schema.Avatar:
		return pointers(d.Avatars)
	case schema.Category:
		return pointers(d.Categories)
	case schema.Video:
		return pointers(d.Videos)
	case schema.Hashtag:
		return pointers(d.Hashtags)
	case schema.VideoHashtag:
		return pointers(d.VideoHashtags)
	case schema.Comment:
		return pointers(d.Comments)
	case schema.CommentLike:
		return pointers(d.CommentLikes)
	case schema.CommentDislike:
		return pointers(d.CommentDislikes)
	case schema.VideoLike:
		return pointers(d.VideoLikes)
	case schema.VideoDislike:
		return pointers(d.VideoDislikes)
	case schema.Subscription:
		return pointers(d.Subscriptions)
	}
	return nil
}

// Len is the number of records of kind.
func (d *Dataset) Len(kind schema.Kind) int { return len(d.Records(kind)) }

// pointers adapts a slice of models to records without copying them.
func pointers[T any, P interface {
	*T
	db.Record
}](items []T) []db.Record {
	out := make([]db.Record, len(items))
	for i := range items {
		out[i] = P(&items[i])
	}
	return out
}

// Validate checks the arena before anything touches a store.
//
// Behavior:
//   - ids are unique within every kind;
//   - every foreign-key handle resolves to a record of the target kind;
//   - every referenced kind is a declared dependency in schema.Graph, so the
//     derived creation order is guaranteed to satisfy the reference.
//
// All problems are reported together, wrapped in ErrInvalidFixture.
func (d *Dataset) Validate() error {
	ids := make(map[schema.Kind]map[uint64]struct{}, len(schema.Graph))
	var problems []string

	for _, n := range schema.Graph {
		seen := make(map[uint64]struct{}, d.Len(n.Kind))
		for _, r := range d.Records(n.Kind) {
			if _, dup := seen[r.Key()]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate id", schema.Ref{Kind: n.Kind, ID: r.Key()}))
			}
			seen[r.Key()] = struct{}{}
		}
		ids[n.Kind] = seen
	}

	for _, n := range schema.Graph {
		for _, r := range d.Records(n.Kind) {
			self := schema.Ref{Kind: n.Kind, ID: r.Key()}
			for _, ref := range r.Refs() {
				if !schema.DependsOn(schema.Graph, n.Kind, ref.Kind) {
					problems = append(problems, fmt.Sprintf("%s: %s is not a declared dependency", self, ref.Kind))
					continue
				}
				if _, ok := ids[ref.Kind][ref.ID]; !ok {
					problems = append(problems, fmt.Sprintf("%s: dangling reference to %s", self, ref))
				}
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d problem(s): %v", seedErr.ErrInvalidFixture, len(problems), problems)
}

// ReconcileCounters overwrites the cached counters with the values implied
// by the comment and like records of the dataset.
func (d *Dataset) ReconcileCounters() {
	comments := map[uint64]int64{}
	for _, c := range d.Comments {
		comments[c.VideoID]++
	}
	videoLikes := map[uint64]int64{}
	for _, l := range d.VideoLikes {
		videoLikes[l.VideoID]++
	}
	commentLikes := map[uint64]int64{}
	for _, l := range d.CommentLikes {
		commentLikes[l.CommentID]++
	}

	for i := range d.Videos {
		d.Videos[i].CountCommentsInside = comments[d.Videos[i].ID]
		d.Videos[i].CountLikesInside = videoLikes[d.Videos[i].ID]
	}
	for i := range d.Comments {
		d.Comments[i].CountLikesInside = commentLikes[d.Comments[i].ID]
	}
}
