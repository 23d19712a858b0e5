package schema

import (
	"fmt"
	"strings"
)

// Kind identifies one entity table of the fixture dataset.
type Kind string

const (
	User           Kind = "user"
	Category       Kind = "category"
	Hashtag        Kind = "hashtag"
	Video          Kind = "video"
	Comment        Kind = "comment"
	Avatar         Kind = "avatar"
	Login          Kind = "login"
	Subscription   Kind = "subscription"
	VideoLike      Kind = "video_like"
	VideoDislike   Kind = "video_dislike"
	CommentLike    Kind = "comment_like"
	CommentDislike Kind = "comment_dislike"
	VideoHashtag   Kind = "video_hashtag"
)

// Ref is a typed foreign-key handle: the kind it points at and the id there.
type Ref struct {
	Kind Kind
	ID   uint64
}

func (r Ref) String() string { return fmt.Sprintf("%s#%d", r.Kind, r.ID) }

// Node declares a kind and the kinds its foreign keys target.
type Node struct {
	Kind      Kind
	DependsOn []Kind
}

// Graph is the dependency table of the dataset.
//
// Declaration order doubles as the tie-breaker of the topological sort, so
// moving rows around here changes the (still valid) order in which
// independent kinds are created.
var Graph = []Node{
	{Kind: User},
	{Kind: Category},
	{Kind: Hashtag},
	{Kind: Video, DependsOn: []Kind{User, Category}},
	{Kind: Comment, DependsOn: []Kind{User, Video}},
	{Kind: Avatar, DependsOn: []Kind{User}},
	{Kind: Login, DependsOn: []Kind{User}},
	{Kind: Subscription, DependsOn: []Kind{User}},
	{Kind: VideoLike, DependsOn: []Kind{User, Video}},
	{Kind: VideoDislike, DependsOn: []Kind{User, Video}},
	{Kind: CommentLike, DependsOn: []Kind{User, Comment}},
	{Kind: CommentDislike, DependsOn: []Kind{User, Comment}},
	{Kind: VideoHashtag, DependsOn: []Kind{Video, Hashtag}},
}

// Order returns the kinds of g sorted so that every kind comes after all of
// its dependencies.
//
// Behavior:
//   - Kahn's algorithm; among ready kinds the one declared first wins, so the
//     result is deterministic.
//   - Fails when a dependency names a kind that is not declared in g.
//   - Fails when g contains a cycle, naming the kinds left unsorted.
func Order(g []Node) ([]Kind, error) {
	index := make(map[Kind]int, len(g))
	for i, n := range g {
		if _, dup := index[n.Kind]; dup {
			return nil, fmt.Errorf("kind %q declared twice", n.Kind)
		}
		index[n.Kind] = i
	}

	pending := make([]int, len(g))
	dependents := make([][]int, len(g))
	for i, n := range g {
		for _, dep := range n.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("kind %q depends on undeclared kind %q", n.Kind, dep)
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, len(g))
	order := make([]Kind, 0, len(g))
	for len(order) < len(g) {
		next := -1
		for i := range g {
			if !done[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var left []string
			for i, n := range g {
				if !done[i] {
					left = append(left, string(n.Kind))
				}
			}
			return nil, fmt.Errorf("dependency cycle among: %s", strings.Join(left, ", "))
		}
		done[next] = true
		order = append(order, g[next].Kind)
		for _, d := range dependents[next] {
			pending[d]--
		}
	}
	return order, nil
}

// Reverse returns a reversed copy of order.
func Reverse(order []Kind) []Kind {
	out := make([]Kind, len(order))
	for i, k := range order {
		out[len(order)-1-i] = k
	}
	return out
}

// CreationOrder is Order applied to Graph: parents before children.
func CreationOrder() ([]Kind, error) { return Order(Graph) }

// TeardownOrder is the exact reverse of CreationOrder: children before parents.
func TeardownOrder() ([]Kind, error) {
	order, err := CreationOrder()
	if err != nil {
		return nil, err
	}
	return Reverse(order), nil
}

// DependsOn reports whether kind declares a foreign key to target in g.
func DependsOn(g []Node, kind, target Kind) bool {
	for _, n := range g {
		if n.Kind != kind {
			continue
		}
		for _, d := range n.DependsOn {
			if d == target {
				return true
			}
		}
	}
	return false
}
