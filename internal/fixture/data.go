package fixture

import (
	"fmt"
	"time"

	"github.com/vidshare/fixture-seeder/internal/auth"
	"github.com/vidshare/fixture-seeder/internal/db"
)

// Credential pairs a fixture user with the plaintext password it is authored
// with. Only the hash ever reaches the store.
type Credential struct {
	UserID   uint64
	Password string
}

// Credentials lists the plaintext passwords of the fixture users, so dev
// tooling and tests can log in as them.
var Credentials = []Credential{
	{UserID: 1, Password: "jurgen123"},
	{UserID: 2, Password: "egon123"},
}

// New builds the canonical dataset. Every user's password is run through
// hash exactly once; a hashing failure aborts construction.
func New(hash auth.Hasher) (*Dataset, error) {
	d := canonical()

	for i := range d.Users {
		plain, ok := passwordFor(d.Users[i].ID)
		if !ok {
			return nil, fmt.Errorf("no credential for user %d", d.Users[i].ID)
		}
		h, err := hash(plain)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", d.Users[i].ID, err)
		}
		d.Users[i].Password = h
	}
	return d, nil
}

func passwordFor(userID uint64) (string, bool) {
	for _, c := range Credentials {
		if c.UserID == userID {
			return c.Password, true
		}
	}
	return "", false
}

// ts parses an RFC 3339 literal. Fixture timestamps are constants, a bad one
// is a typo in this file.
func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("fixture: bad timestamp %q: %v", s, err))
	}
	return t
}

func str(s string) *string { return &s }

func canonical() *Dataset {
	return &Dataset{
		Users: []db.User{
			{
				ID:          1,
				FirstName:   "Jurgen",
				LastName:    "Hasmeta",
				Username:    "avenger22",
				Gender:      "M",
				Birthday:    "22/12/1997",
				PhoneNumber: "06933344123",
				Email:       "jurgenhasmeta@email.com",
				Description: "I am jurgen hasmeta",
				CreatedAt:   ts("2020-03-18T14:21:00+02:00"),
				UpdatedAt:   ts("2021-03-18T14:21:00+02:00"),
			},
			{
				ID:          2,
				FirstName:   "Andrea",
				LastName:    "Buonanotte",
				Username:    "andrea12",
				Gender:      "M",
				Birthday:    "20/11/1996",
				PhoneNumber: "06723344123",
				Email:       "andrea@email.com",
				Description: "I am andrea",
				CreatedAt:   ts("2018-01-18T14:21:00+02:00"),
				UpdatedAt:   ts("2022-03-18T14:21:00+02:00"),
			},
		},

		Logins: []db.Login{
			// "succes" is the recorded value; status is free text.
			{ID: 1, Status: "succes", CreatedAt: ts("2021-03-18T14:21:00+02:00"), UserID: 1},
			{ID: 2, Status: "success", CreatedAt: ts("2020-02-18T14:21:00+02:00"), UserID: 1},
			{ID: 3, Status: "success", CreatedAt: ts("2018-01-18T14:21:00+02:00"), UserID: 2},
		},

		Avatars: []db.Avatar{
			{
				ID:        1,
				Src:       "/assets/avatars/jurgen-avatar.jpg",
				CreatedAt: ts("2020-05-18T14:21:00+02:00"),
				UpdatedAt: ts("2020-07-18T14:21:00+02:00"),
				UserID:    1,
			},
			{
				ID:        2,
				Src:       "/assets/avatars/egon-avatar.jpg",
				CreatedAt: ts("2010-05-18T14:21:00+02:00"),
				UpdatedAt: ts("2020-07-18T14:21:00+02:00"),
				UserID:    2,
			},
		},

		Categories: []db.Category{
			{ID: 1, Name: "Football"},
			{ID: 2, Name: "Fighting"},
		},

		// Counters are authored as zero even though comments and likes below
		// point at these videos. See Dataset.ReconcileCounters.
		Videos: []db.Video{
			{
				ID:         1,
				Title:      "inter 3-1 liverpool highlits",
				CreatedAt:  ts("2020-05-18T14:21:00+02:00"),
				UpdatedAt:  ts("2020-07-18T14:21:00+02:00"),
				UserID:     1,
				CategoryID: 1,
			},
			{
				ID:          2,
				Title:       "watch this getting punched",
				Description: str(""),
				CreatedAt:   ts("2020-08-18T14:21:00+02:00"),
				UpdatedAt:   ts("2020-07-18T14:21:00+02:00"),
				UserID:      2,
				CategoryID:  2,
			},
			{
				ID:          3,
				Title:       "watch this getting punched again this time by tyson",
				Description: str(""),
				CreatedAt:   ts("2020-02-18T14:21:00+02:00"),
				UpdatedAt:   ts("2020-08-18T14:21:00+02:00"),
				UserID:      1,
				CategoryID:  2,
			},
		},

		Hashtags: []db.Hashtag{
			{ID: 1, Name: "Soccer"},
			{ID: 2, Name: "funny"},
		},

		VideoHashtags: []db.VideoHashtag{
			{ID: 1, VideoID: 1, HashtagID: 1},
			{ID: 2, VideoID: 2, HashtagID: 2},
			{ID: 3, VideoID: 3, HashtagID: 2},
		},

		Comments: []db.Comment{
			{
				ID:        1,
				Content:   "hi i am jurgen",
				CreatedAt: ts("2020-01-18T14:21:00+02:00"),
				UpdatedAt: ts("2020-02-18T14:21:00+02:00"),
				UserID:    1,
				VideoID:   2,
			},
			{
				ID:        2,
				Content:   "hi i am egon",
				CreatedAt: ts("2020-08-18T14:21:00+02:00"),
				UpdatedAt: ts("2020-09-18T14:21:00+02:00"),
				UserID:    2,
				VideoID:   1,
			},
		},

		CommentLikes: []db.CommentLike{
			{ID: 1, CreatedAt: ts("2020-05-18T14:21:00+02:00"), UpdatedAt: ts("2020-06-18T14:21:00+02:00"), UserID: 1, CommentID: 2},
			{ID: 2, CreatedAt: ts("2020-09-18T14:21:00+02:00"), UpdatedAt: ts("2020-10-18T14:21:00+02:00"), UserID: 2, CommentID: 1},
		},

		CommentDislikes: []db.CommentDislike{
			{ID: 1, CreatedAt: ts("2020-05-18T14:21:00+02:00"), UpdatedAt: ts("2020-06-18T14:21:00+02:00"), UserID: 1, CommentID: 1},
			{ID: 2, CreatedAt: ts("2020-09-18T14:21:00+02:00"), UpdatedAt: ts("2020-10-18T14:21:00+02:00"), UserID: 2, CommentID: 2},
		},

		VideoLikes: []db.VideoLike{
			{ID: 1, CreatedAt: ts("2020-02-18T14:21:00+02:00"), UpdatedAt: ts("2020-08-18T14:21:00+02:00"), UserID: 1, VideoID: 2},
			{ID: 2, CreatedAt: ts("2020-09-18T14:21:00+02:00"), UpdatedAt: ts("2020-11-18T14:21:00+02:00"), UserID: 2, VideoID: 1},
		},

		VideoDislikes: []db.VideoDislike{
			{ID: 1, CreatedAt: ts("2020-02-18T14:21:00+02:00"), UpdatedAt: ts("2020-08-18T14:21:00+02:00"), UserID: 1, VideoID: 1},
			{ID: 2, CreatedAt: ts("2020-09-18T14:21:00+02:00"), UpdatedAt: ts("2020-11-18T14:21:00+02:00"), UserID: 2, VideoID: 2},
		},

		Subscriptions: []db.Subscription{
			{ID: 1, CreatedAt: ts("2020-02-18T14:21:00+02:00"), UpdatedAt: ts("2020-08-18T14:21:00+02:00"), SubscriberID: 1, SubscribingID: 2},
			{ID: 2, CreatedAt: ts("2020-02-18T14:21:00+02:00"), UpdatedAt: ts("2020-08-18T14:21:00+02:00"), SubscriberID: 2, SubscribingID: 1},
		},
	}
}
