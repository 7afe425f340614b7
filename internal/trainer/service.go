package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
	"github.com/mind-engage/pizzaquiz/internal/quiz"
	"github.com/mind-engage/pizzaquiz/internal/store"
)

// DefaultQuizReadyViews is how many reviews of an item unlock quizzing it.
const DefaultQuizReadyViews = 3

// Retention decides what happens to records nobody can reach any more.
type Retention struct {
	// DeleteOnReset removes the record when its owner resets identity.
	DeleteOnReset bool
	// IdleTTL is how long an untouched record is kept. Zero keeps it forever.
	IdleTTL time.Duration
}

type Service struct {
	store          store.Store
	catalog        *catalog.Catalog
	selector       *quiz.Selector
	locks          *keyedLocks
	newID          func() string
	log            logrus.FieldLogger
	quizReadyViews int
	retention      Retention
}

type Option func(*Service)

func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }

func WithIDGenerator(f func() string) Option { return func(s *Service) { s.newID = f } }

func WithQuizReadyViews(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.quizReadyViews = n
		}
	}
}

func WithRetention(r Retention) Option { return func(s *Service) { s.retention = r } }

func New(st store.Store, c *catalog.Catalog, sel *quiz.Selector, opts ...Option) *Service {
	s := &Service{
		store:          st,
		catalog:        c,
		selector:       sel,
		locks:          newKeyedLocks(),
		newID:          uuid.NewString,
		log:            logrus.StandardLogger(),
		quizReadyViews: DefaultQuizReadyViews,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Counters are one item's tallies for one user.
type Counters struct {
	Views   int `json:"views"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

func countersFor(st quiz.UserState, name string) Counters {
	return Counters{Views: st.Views[name], Correct: st.Correct[name], Wrong: st.Wrong[name]}
}

type ReviewResult struct {
	UserID    string            `json:"-"`
	Created   bool              `json:"-"`
	Item      catalog.Item      `json:"item"`
	Sections  []catalog.Section `json:"sections"`
	Counters  Counters          `json:"counters"`
	QuizReady bool              `json:"quiz_ready"`
}

type QuizResult struct {
	UserID   string            `json:"-"`
	Created  bool              `json:"-"`
	Item     string            `json:"item"`
	Sections []catalog.Section `json:"sections"`
	Counters Counters          `json:"counters"`
}

type SubmitResult struct {
	UserID   string       `json:"-"`
	Created  bool         `json:"-"`
	Item     catalog.Item `json:"item"`
	Outcome  quiz.Outcome `json:"outcome"`
	Counters Counters     `json:"counters"`
}

type StatusResult struct {
	UserID  string      `json:"-"`
	Created bool        `json:"-"`
	Status  quiz.Status `json:"status"`
}

// Resolve loads the record for userID. An empty or unknown ID gets a fresh
// ID and a default record, persisted before returning.
func (s *Service) Resolve(ctx context.Context, userID string) (string, quiz.UserState, bool, error) {
	if userID != "" {
		st, err := s.store.Get(ctx, userID)
		switch {
		case err == nil:
			st.Normalize(s.catalog)
			return userID, st, false, nil
		case !errors.Is(err, store.ErrNotFound):
			return "", quiz.UserState{}, false, fmt.Errorf("load user %s: %w", userID, err)
		}
	}
	id := s.newID()
	st := quiz.NewUserState(s.catalog)
	if err := s.store.Put(ctx, id, st); err != nil {
		return "", quiz.UserState{}, false, fmt.Errorf("create user: %w", err)
	}
	s.log.WithField("user_id", id).Info("new user record")
	return id, st, true, nil
}

func (s *Service) save(ctx context.Context, id string, st quiz.UserState) error {
	if err := s.store.Put(ctx, id, st); err != nil {
		return fmt.Errorf("save user %s: %w", id, err)
	}
	return nil
}

func (s *Service) Review(ctx context.Context, userID string) (ReviewResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	id, st, created, err := s.Resolve(ctx, userID)
	if err != nil {
		return ReviewResult{}, err
	}
	it := s.selector.Review(s.catalog, &st)
	if err := s.save(ctx, id, st); err != nil {
		return ReviewResult{}, err
	}
	c := countersFor(st, it.Name)
	return ReviewResult{
		UserID:    id,
		Created:   created,
		Item:      it,
		Sections:  s.catalog.Sections(it),
		Counters:  c,
		QuizReady: c.Views >= s.quizReadyViews,
	}, nil
}

func (s *Service) Quiz(ctx context.Context, userID string) (QuizResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	id, st, created, err := s.Resolve(ctx, userID)
	if err != nil {
		return QuizResult{}, err
	}
	it := s.selector.Quiz(s.catalog, &st)
	if err := s.save(ctx, id, st); err != nil {
		return QuizResult{}, err
	}
	return QuizResult{
		UserID:   id,
		Created:  created,
		Item:     it.Name,
		Sections: s.catalog.QuizSections(),
		Counters: countersFor(st, it.Name),
	}, nil
}

// Submit grades picked against the current item and records the result.
// The record is unchanged when grading is refused.
func (s *Service) Submit(ctx context.Context, userID string, picked []string) (SubmitResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	id, st, created, err := s.Resolve(ctx, userID)
	if err != nil {
		return SubmitResult{}, err
	}
	it, out, err := quiz.Submit(s.catalog, &st, picked)
	if err != nil {
		return SubmitResult{UserID: id, Created: created}, err
	}
	if err := s.save(ctx, id, st); err != nil {
		return SubmitResult{}, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id": id,
		"item":    it.Name,
		"exact":   out.Exact,
	}).Debug("quiz submitted")
	return SubmitResult{
		UserID:   id,
		Created:  created,
		Item:     it,
		Outcome:  out,
		Counters: countersFor(st, it.Name),
	}, nil
}

func (s *Service) Status(ctx context.Context, userID string) (StatusResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	id, st, created, err := s.Resolve(ctx, userID)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{UserID: id, Created: created, Status: quiz.Summarize(s.catalog, st)}, nil
}

// Lookup reads a record without creating one.
func (s *Service) Lookup(ctx context.Context, userID string) (quiz.Status, error) {
	st, err := s.store.Get(ctx, userID)
	if err != nil {
		return quiz.Status{}, err
	}
	st.Normalize(s.catalog)
	return quiz.Summarize(s.catalog, st), nil
}

// Reset forgets the caller's identity. With DeleteOnReset the old record
// goes too; otherwise it stays until pruned.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if userID == "" || !s.retention.DeleteOnReset {
		return nil
	}
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.store.Delete(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	s.log.WithField("user_id", userID).Info("user record deleted on reset")
	return nil
}

// Prune deletes records idle for longer than the retention TTL.
func (s *Service) Prune(ctx context.Context, now time.Time) (int, error) {
	if s.retention.IdleTTL <= 0 {
		return 0, nil
	}
	n, err := s.store.PruneIdle(ctx, now.Add(-s.retention.IdleTTL))
	if err != nil {
		return 0, fmt.Errorf("prune idle users: %w", err)
	}
	if n > 0 {
		s.log.WithField("removed", n).Info("pruned idle user records")
	}
	return n, nil
}

// Stats reports how many records the store holds.
func (s *Service) Stats(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
