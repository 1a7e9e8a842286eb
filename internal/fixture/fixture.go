// Package fixture fabricates sample teams and boards for demos and tests.
// Nothing in here is a production data source.
package fixture

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/synergysphere/sphere/internal/domain"
)

const (
	boardMembers = 10
	boardTasks   = 15
	maxStreak    = 25

	// suggestionAttempts bounds TeamNameSuggestions when the word lists
	// cannot produce enough distinct names.
	suggestionAttempts = 64
)

// defaultColumns mirrors the initial layout of the project board screen.
var defaultColumns = []struct {
	id    string
	title string
	tasks [2]int // half-open range of task numbers
}{
	{"column-1", "To-Do", [2]int{0, 4}},
	{"column-2", "In Progress", [2]int{4, 7}},
	{"column-3", "Review", [2]int{7, 9}},
	{"column-4", "Completed", [2]int{9, 15}},
}

// Generator produces randomized fixtures. Two generators built with the same
// non-zero seed produce the same sequence of values. A Generator is not safe
// for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator. A zero seed picks a random one.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// TeamName returns an "Adjective Animal" name such as "Brave Fish".
func (g *Generator) TeamName() string {
	return capitalize(g.faker.AdjectiveDescriptive()) + " " + capitalize(g.faker.AnimalType())
}

// Nickname returns an "Adjective Bird" name such as "Quiet Heron".
func (g *Generator) Nickname() string {
	return capitalize(g.faker.AdjectiveDescriptive()) + " " + capitalize(g.faker.Bird())
}

// TeamNameSuggestions returns up to n distinct team names.
func (g *Generator) TeamNameSuggestions(n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for attempts := 0; len(out) < n && attempts < n*suggestionAttempts; attempts++ {
		name := g.TeamName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// TeamMembers returns n members with generated names, nicknames and initials.
func (g *Generator) TeamMembers(n int) []domain.TeamMember {
	members := make([]domain.TeamMember, 0, n)
	for range n {
		name := g.faker.Name()
		members = append(members, domain.TeamMember{
			ID:       g.uuid(),
			Name:     name,
			Nickname: g.Nickname(),
			Avatar:   AvatarInitials(name),
		})
	}
	return members
}

// Board returns a valid board laid out like the project board screen:
// fifteen tasks spread over To-Do, In Progress, Review and Completed.
func (g *Generator) Board(name string) *domain.Board {
	members := g.TeamMembers(boardMembers)

	b := &domain.Board{
		ID:          g.uuid(),
		Name:        name,
		Tasks:       make(map[string]domain.Task, boardTasks),
		Columns:     make(map[string]domain.Column, len(defaultColumns)),
		ColumnOrder: make([]string, 0, len(defaultColumns)),
	}

	for i := range boardTasks {
		id := fmt.Sprintf("task-%d", i)
		b.Tasks[id] = domain.Task{
			ID:       id,
			Content:  capitalize(g.faker.HackerPhrase()),
			Assignee: members[g.faker.IntRange(0, len(members)-1)],
			Streak:   g.faker.IntRange(0, maxStreak),
		}
	}

	for _, c := range defaultColumns {
		ids := make([]string, 0, c.tasks[1]-c.tasks[0])
		for i := c.tasks[0]; i < c.tasks[1]; i++ {
			ids = append(ids, fmt.Sprintf("task-%d", i))
		}
		b.Columns[c.id] = domain.Column{ID: c.id, Title: c.title, TaskIDs: ids}
		b.ColumnOrder = append(b.ColumnOrder, c.id)
	}

	return b
}

func (g *Generator) uuid() uuid.UUID {
	id, err := uuid.Parse(g.faker.UUID())
	if err != nil {
		return uuid.New()
	}
	return id
}

// AvatarInitials returns the upper-cased first letters of the first two words
// of name, or its first two characters when it is a single word.
func AvatarInitials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		r := []rune(parts[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		first, _ := utf8.DecodeRuneInString(parts[0])
		second, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{first, second}))
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
