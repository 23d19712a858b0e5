package db

import (
	"time"

	"github.com/vidshare/fixture-seeder/internal/schema"
)

// Record is implemented by every persisted model.
//
//   - Kind: the entity kind the row belongs to.
//   - Key: the author-assigned primary key.
//   - Refs: the foreign-key handles the row carries.
type Record interface {
	Kind() schema.Kind
	Key() uint64
	Refs() []schema.Ref
	TableName() string
}

// User table
type User struct {
	ID          uint64 `gorm:"primaryKey"`
	FirstName   string `gorm:"size:64;not null"`
	LastName    string `gorm:"size:64;not null"`
	Username    string `gorm:"uniqueIndex;size:64;not null"`
	Gender      string `gorm:"size:16;not null"`
	Birthday    string `gorm:"size:16"` // dd/mm/yyyy, as authored
	PhoneNumber string `gorm:"size:32"`
	Email       string `gorm:"uniqueIndex;size:128;not null"`
	Password    string `gorm:"size:255;not null"` // bcrypt hash, never plaintext
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (User) TableName() string { return "users" }
func (User) Kind() schema.Kind { return schema.User }
func (u User) Key() uint64 { return u.ID }
func (User) Refs() []schema.Ref { return nil }

// Login records one authentication attempt and its outcome.
type Login struct {
	ID        uint64 `gorm:"primaryKey"`
	Status    string `gorm:"size:32;not null"`
	CreatedAt time.Time
	UserID    uint64 `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Login) TableName() string { return "logins" }
func (Login) Kind() schema.Kind { return schema.Login }
func (l Login) Key() uint64 { return l.ID }
func (l Login) Refs() []schema.Ref {
	return []schema.Ref{{Kind: schema.User, ID: l.UserID}}
}

// Avatar is a user's profile image. One active avatar per user is the
// convention, not a constraint.
type Avatar struct {
	ID        uint64 `gorm:"primaryKey"`
	Src       string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint64 `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Avatar) TableName() string { return "avatars" }
func (Avatar) Kind() schema.Kind { return schema.Avatar }
func (a Avatar) Key() uint64 { return a.ID }
func (a Avatar) Refs() []schema.Ref {
	return []schema.Ref{{Kind: schema.User, ID: a.UserID}}
}

type Category struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

func (Category) TableName() string { return "categories" }
func (Category) Kind() schema.Kind { return schema.Category }
func (c Category) Key() uint64 { return c.ID }
func (Category) Refs() []schema.Ref { return nil }

// Video is an uploaded clip.
//
// CountCommentsInside and CountLikesInside are cached counters. They are
// written as authored and are not kept in sync with the comment and like
// tables unless the dataset was reconciled before seeding.
type Video struct {
	ID                  uint64  `gorm:"primaryKey"`
	Title               string  `gorm:"size:255;not null"`
	Description         *string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CountCommentsInside int64  `gorm:"not null"`
	CountLikesInside    int64  `gorm:"not null"`
	Src                 string `gorm:"size:255"`
	UserID              uint64 `gorm:"not null;index"`
	CategoryID          uint64 `gorm:"not null;index"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Video) TableName() string { return "videos" }
func (Video) Kind() schema.Kind { return schema.Video }
func (v Video) Key() uint64 { return v.ID }
func (v Video) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: v.UserID},
		{Kind: schema.Category, ID: v.CategoryID},
	}
}

type Hashtag struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

func (Hashtag) TableName() string { return "hashtags" }
func (Hashtag) Kind() schema.Kind { return schema.Hashtag }
func (h Hashtag) Key() uint64 { return h.ID }
func (Hashtag) Refs() []schema.Ref { return nil }

// VideoHashtag is the many-to-many link between videos and hashtags.
type VideoHashtag struct {
	ID        uint64 `gorm:"primaryKey"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:uq_video_hashtag,priority:1"`
	HashtagID uint64 `gorm:"not null;uniqueIndex:uq_video_hashtag,priority:2"`

	Video   Video   `gorm:"foreignKey:VideoID;constraint:OnDelete:RESTRICT" json:"-"`
	Hashtag Hashtag `gorm:"foreignKey:HashtagID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (VideoHashtag) TableName() string { return "video_hashtags" }
func (VideoHashtag) Kind() schema.Kind { return schema.VideoHashtag }
func (vh VideoHashtag) Key() uint64 { return vh.ID }
func (vh VideoHashtag) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.Video, ID: vh.VideoID},
		{Kind: schema.Hashtag, ID: vh.HashtagID},
	}
}

type Comment struct {
	ID               uint64 `gorm:"primaryKey"`
	Content          string `gorm:"type:text;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CountLikesInside int64  `gorm:"not null"`
	UserID           uint64 `gorm:"not null;index"`
	VideoID          uint64 `gorm:"not null;index"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Comment) TableName() string { return "comments" }
func (Comment) Kind() schema.Kind { return schema.Comment }
func (c Comment) Key() uint64 { return c.ID }
func (c Comment) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: c.UserID},
		{Kind: schema.Video, ID: c.VideoID},
	}
}

// CommentLike / CommentDislike: one reaction of a user on a comment.
// A like and a dislike for the same pair may coexist.
type CommentLike struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint64 `gorm:"not null;uniqueIndex:uq_comment_like,priority:1"`
	CommentID uint64 `gorm:"not null;uniqueIndex:uq_comment_like,priority:2"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (CommentLike) TableName() string { return "comment_likes" }
func (CommentLike) Kind() schema.Kind { return schema.CommentLike }
func (cl CommentLike) Key() uint64 { return cl.ID }
func (cl CommentLike) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: cl.UserID},
		{Kind: schema.Comment, ID: cl.CommentID},
	}
}

type CommentDislike struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint64 `gorm:"not null;uniqueIndex:uq_comment_dislike,priority:1"`
	CommentID uint64 `gorm:"not null;uniqueIndex:uq_comment_dislike,priority:2"`

	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (CommentDislike) TableName() string { return "comment_dislikes" }
func (CommentDislike) Kind() schema.Kind { return schema.CommentDislike }
func (cd CommentDislike) Key() uint64 { return cd.ID }
func (cd CommentDislike) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: cd.UserID},
		{Kind: schema.Comment, ID: cd.CommentID},
	}
}

// VideoLike / VideoDislike: one reaction of a user on a video.
type VideoLike struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint64 `gorm:"not null;uniqueIndex:uq_video_like,priority:1"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:uq_video_like,priority:2"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (VideoLike) TableName() string { return "video_likes" }
func (VideoLike) Kind() schema.Kind { return schema.VideoLike }
func (vl VideoLike) Key() uint64 { return vl.ID }
func (vl VideoLike) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: vl.UserID},
		{Kind: schema.Video, ID: vl.VideoID},
	}
}

type VideoDislike struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint64 `gorm:"not null;uniqueIndex:uq_video_dislike,priority:1"`
	VideoID   uint64 `gorm:"not null;uniqueIndex:uq_video_dislike,priority:2"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Video Video `gorm:"foreignKey:VideoID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (VideoDislike) TableName() string { return "video_dislikes" }
func (VideoDislike) Kind() schema.Kind { return schema.VideoDislike }
func (vd VideoDislike) Key() uint64 { return vd.ID }
func (vd VideoDislike) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: vd.UserID},
		{Kind: schema.Video, ID: vd.VideoID},
	}
}

// Subscription: SubscriberID follows SubscribingID. Both point at users.
type Subscription struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubscriberID  uint64 `gorm:"not null;index"`
	SubscribingID uint64 `gorm:"not null;index"`

	Subscriber  User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:RESTRICT" json:"-"`
	Subscribing User `gorm:"foreignKey:SubscribingID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Subscription) TableName() string { return "subscriptions" }
func (Subscription) Kind() schema.Kind { return schema.Subscription }
func (s Subscription) Key() uint64 { return s.ID }
func (s Subscription) Refs() []schema.Ref {
	return []schema.Ref{
		{Kind: schema.User, ID: s.SubscriberID},
		{Kind: schema.User, ID: s.SubscribingID},
	}
}

// Models returns a pointer to a zero value of every model, in schema.Graph
// order.
func Models() []Record {
	return []Record{
		&User{}, &Category{}, &Hashtag{},
		&Video{}, &Comment{},
		&Avatar{}, &Login{}, &Subscription{},
		&VideoLike{}, &VideoDislike{},
		&CommentLike{}, &CommentDislike{},
		&VideoHashtag{},
	}
}

// ModelFor returns a zero value of the model backing kind.
func ModelFor(kind schema.Kind) (Record, bool) {
	for _, m := range Models() {
		if m.Kind() == kind {
			return m, true
		}
	}
	return nil, false
}
