package mockbackend

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/mindease/pkg/api"
)

const (
	displayLayout = "2006-01-02 15:04:05"
	dayLayout     = "2006-01-02"
)

var (
	ErrUserExists    = errors.New("Username already exists")
	ErrBadLogin      = errors.New("Invalid username or password")
	ErrUserNotFound  = errors.New("User not found")
	ErrWrongPassword = errors.New("Incorrect old password")
	ErrEntryNotFound = errors.New("Journal entry not found or unauthorized")
)

type record struct {
	id        string
	username  string
	text      string
	at        time.Time
	sentiment api.Sentiment
}

func (r record) entry() api.Entry {
	return api.Entry{
		ID:        api.EntryID(r.id),
		Date:      r.at.Format(displayLayout),
		Text:      r.text,
		Sentiment: r.sentiment,
	}
}

// Store keeps users and entries in memory.
type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string][]byte
	entries []record
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now, users: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a user.
func (s *Store) Register(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}
	s.users[username] = hash
	return nil
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(username, password string) error {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return ErrBadLogin
	}
	return nil
}

// ChangePassword replaces a user's password after checking the old one.
func (s *Store) ChangePassword(username, oldPassword, newPassword string) error {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	next, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.users[username] = next
	s.mu.Unlock()
	return nil
}

// Add stores a new entry for username. Its sentiment starts out unknown.
func (s *Store) Add(username, text string) api.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := record{
		id:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		username:  username,
		text:      text,
		at:        s.now(),
		sentiment: api.SentimentUnknown,
	}
	s.entries = append(s.entries, r)
	return r.entry()
}

// List returns username's entries, newest first.
func (s *Store) List(username string) []api.Entry {
	recs := s.records(username)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].at.After(recs[j].at) })
	out := make([]api.Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.entry())
	}
	return out
}

// Recent returns the text of username's latest n entries.
func (s *Store) Recent(username string, n int) []string {
	entries := s.List(username)
	if len(entries) > n {
		entries = entries[:n]
	}
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return texts
}

// SetSentiment reclassifies one entry.
func (s *Store) SetSentiment(username, id string, sentiment api.Sentiment) (api.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].id == id && s.entries[i].username == username {
			s.entries[i].sentiment = sentiment
			return s.entries[i].entry(), nil
		}
	}
	return api.Entry{}, ErrEntryNotFound
}

// Summary counts username's entries per sentiment. Unrecognized labels
// count as unknown.
func (s *Store) Summary(username string) api.SentimentSummary {
	var sum api.SentimentSummary
	for _, r := range s.records(username) {
		tally(&sum.Positive, &sum.Neutral, &sum.Negative, &sum.Mixed, &sum.Unknown, r.sentiment)
		sum.Total++
	}
	return sum
}

// Trends counts username's entries per sentiment per calendar day, oldest
// day first.
func (s *Store) Trends(username string) []api.TrendPoint {
	byDay := make(map[string]*api.TrendPoint)
	for _, r := range s.records(username) {
		day := r.at.Format(dayLayout)
		p, ok := byDay[day]
		if !ok {
			p = &api.TrendPoint{Date: day}
			byDay[day] = p
		}
		tally(&p.Positive, &p.Neutral, &p.Negative, &p.Mixed, &p.Unknown, r.sentiment)
	}
	out := make([]api.TrendPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Between returns username's entries from the start of start through the
// end of end, oldest first.
func (s *Store) Between(username string, start, end time.Time) []api.Entry {
	end = end.Add(24*time.Hour - time.Nanosecond)
	var recs []record
	for _, r := range s.records(username) {
		at := time.Date(r.at.Year(), r.at.Month(), r.at.Day(), r.at.Hour(), r.at.Minute(), r.at.Second(), r.at.Nanosecond(), time.UTC)
		if !at.Before(start) && !at.After(end) {
			recs = append(recs, r)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].at.Before(recs[j].at) })
	out := make([]api.Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.entry())
	}
	return out
}

func (s *Store) records(username string) []record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []record
	for _, r := range s.entries {
		if r.username == username {
			out = append(out, r)
		}
	}
	return out
}

func tally(positive, neutral, negative, mixed, unknown *int, s api.Sentiment) {
	switch s {
	case api.SentimentPositive:
		*positive++
	case api.SentimentNeutral:
		*neutral++
	case api.SentimentNegative:
		*negative++
	case api.SentimentMixed:
		*mixed++
	default:
		*unknown++
	}
}
