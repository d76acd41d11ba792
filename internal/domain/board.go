package domain

import (
	"fmt"
	"slices"
)

// InboxID is the fixed container id of the inbox.
const InboxID = "inbox"

type CardSource string

const (
	CardSourceNone   CardSource = ""
	CardSourceEmail  CardSource = "email"
	CardSourceSlack  CardSource = "slack"
	CardSourceTeams  CardSource = "teams"
	CardSourceChrome CardSource = "chrome"
)

// Valid reports whether s is a known source tag. The empty tag is valid.
func (s CardSource) Valid() bool {
	switch s {
	case CardSourceNone, CardSourceEmail, CardSourceSlack, CardSourceTeams, CardSourceChrome:
		return true
	default:
		return false
	}
}

type Card struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Source CardSource `json:"source,omitempty"`
}

type List struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	CardIDs []string `json:"cardIds"`
	Color   string   `json:"color,omitempty"`
}

// Board is the aggregate root. Its JSON form is the persisted blob.
type Board struct {
	Cards     map[string]Card  `json:"cards"`
	Lists     map[string]*List `json:"lists"`
	ListOrder []string         `json:"listOrder"`
	InboxIDs  []string         `json:"inboxIds"`
	Title     string           `json:"boardTitle"`
}

// NewBoard returns an empty board with initialized maps and sequences.
func NewBoard(title string) Board {
	return Board{
		Cards:     make(map[string]Card),
		Lists:     make(map[string]*List),
		ListOrder: []string{},
		InboxIDs:  []string{},
		Title:     title,
	}
}

// Card resolves a card by id.
func (b Board) Card(id string) (Card, bool) {
	c, ok := b.Cards[id]
	return c, ok
}

// List resolves a list by id.
func (b Board) List(id string) (*List, bool) {
	l, ok := b.Lists[id]
	return l, ok
}

// Container returns the ordered card ids held by the inbox or a list.
// The returned slice aliases board state.
func (b Board) Container(containerID string) ([]string, bool) {
	if containerID == InboxID {
		return b.InboxIDs, true
	}
	l, ok := b.Lists[containerID]
	if !ok {
		return nil, false
	}
	return l.CardIDs, true
}

// CardsIn returns the cards of a container in display order. Ids without a
// card entry are skipped.
func (b Board) CardsIn(containerID string) ([]Card, bool) {
	ids, ok := b.Container(containerID)
	if !ok {
		return nil, false
	}
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		if c, found := b.Cards[id]; found {
			cards = append(cards, c)
		}
	}
	return cards, true
}

// Locate reports which container holds cardID and at which position.
// Lists are searched in listOrder, then the inbox.
func (b Board) Locate(cardID string) (containerID string, index int, ok bool) {
	for _, listID := range b.ListOrder {
		l, found := b.Lists[listID]
		if !found {
			continue
		}
		if i := slices.Index(l.CardIDs, cardID); i >= 0 {
			return listID, i, true
		}
	}
	if i := slices.Index(b.InboxIDs, cardID); i >= 0 {
		return InboxID, i, true
	}
	return "", -1, false
}

// ListIndex returns the display position of a list, or -1.
func (b Board) ListIndex(listID string) int {
	return slices.Index(b.ListOrder, listID)
}

// Orphans returns ids of cards that no container references, sorted.
func (b Board) Orphans() []string {
	owned := make(map[string]struct{}, len(b.Cards))
	for _, id := range b.InboxIDs {
		owned[id] = struct{}{}
	}
	for _, l := range b.Lists {
		for _, id := range l.CardIDs {
			owned[id] = struct{}{}
		}
	}
	var out []string
	for id := range b.Cards {
		if _, ok := owned[id]; !ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy that shares no maps, slices or lists with b.
func (b Board) Clone() Board {
	out := Board{
		Cards:     make(map[string]Card, len(b.Cards)),
		Lists:     make(map[string]*List, len(b.Lists)),
		ListOrder: cloneIDs(b.ListOrder),
		InboxIDs:  cloneIDs(b.InboxIDs),
		Title:     b.Title,
	}
	for id, c := range b.Cards {
		out.Cards[id] = c
	}
	for id, l := range b.Lists {
		if l == nil {
			continue
		}
		cp := *l
		cp.CardIDs = cloneIDs(l.CardIDs)
		out.Lists[id] = &cp
	}
	return out
}

// Validate checks the structural invariants of the board. Cards without an
// owning container are allowed.
func (b Board) Validate() error {
	if len(b.ListOrder) != len(b.Lists) {
		return fmt.Errorf("board: listOrder has %d ids, list map has %d entries", len(b.ListOrder), len(b.Lists))
	}
	seenLists := make(map[string]struct{}, len(b.ListOrder))
	for _, id := range b.ListOrder {
		if _, dup := seenLists[id]; dup {
			return fmt.Errorf("board: list %q repeated in listOrder", id)
		}
		seenLists[id] = struct{}{}
		if id == InboxID {
			return fmt.Errorf("board: list id %q is reserved for the inbox", id)
		}
		if _, clash := b.Cards[id]; clash {
			return fmt.Errorf("board: list id %q is also a card id", id)
		}
		l, ok := b.Lists[id]
		if !ok {
			return fmt.Errorf("board: list %q in listOrder has no entry", id)
		}
		if l.ID != id {
			return fmt.Errorf("board: list entry %q carries id %q", id, l.ID)
		}
	}

	owner := make(map[string]string, len(b.Cards))
	check := func(containerID string, ids []string) error {
		for _, id := range ids {
			if _, ok := b.Cards[id]; !ok {
				return fmt.Errorf("board: card %q in %q has no entry", id, containerID)
			}
			if prev, dup := owner[id]; dup {
				return fmt.Errorf("board: card %q held by both %q and %q", id, prev, containerID)
			}
			owner[id] = containerID
		}
		return nil
	}
	for _, id := range b.ListOrder {
		if err := check(id, b.Lists[id].CardIDs); err != nil {
			return err
		}
	}
	if err := check(InboxID, b.InboxIDs); err != nil {
		return err
	}
	for id, c := range b.Cards {
		if c.ID != id {
			return fmt.Errorf("board: card entry %q carries id %q", id, c.ID)
		}
	}
	return nil
}

// Sanitize repairs a board read from storage so that Validate passes:
// lists keyed by the inbox id or by a card id are dropped, listOrder and the
// list map are reconciled, dangling card ids are dropped,
// and a card held by several containers stays only in the first one
// (lists in display order, then the inbox).
func (b Board) Sanitize() Board {
	out := b.Clone()
	if out.Cards == nil {
		out.Cards = make(map[string]Card)
	}
	if out.Lists == nil {
		out.Lists = make(map[string]*List)
	}

	for id, c := range out.Cards {
		if c.ID != id {
			c.ID = id
			out.Cards[id] = c
		}
	}
	for id := range out.Lists {
		if _, clash := out.Cards[id]; clash || id == InboxID {
			delete(out.Lists, id)
		}
	}

	order := make([]string, 0, len(out.ListOrder))
	seenLists := make(map[string]struct{}, len(out.ListOrder))
	for _, id := range out.ListOrder {
		l, ok := out.Lists[id]
		if !ok || l == nil {
			continue
		}
		if _, dup := seenLists[id]; dup {
			continue
		}
		seenLists[id] = struct{}{}
		order = append(order, id)
	}
	var missing []string
	for id, l := range out.Lists {
		if l == nil {
			delete(out.Lists, id)
			continue
		}
		if _, ok := seenLists[id]; !ok {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	out.ListOrder = append(order, missing...)

	seenCards := make(map[string]struct{}, len(out.Cards))
	keep := func(ids []string) []string {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := out.Cards[id]; !ok {
				continue
			}
			if _, dup := seenCards[id]; dup {
				continue
			}
			seenCards[id] = struct{}{}
			kept = append(kept, id)
		}
		return kept
	}
	for _, id := range out.ListOrder {
		l := out.Lists[id]
		l.ID = id
		l.CardIDs = keep(l.CardIDs)
	}
	out.InboxIDs = keep(out.InboxIDs)

	return out
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
