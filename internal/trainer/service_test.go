package trainer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/pizzaquiz/internal/catalog"
	"github.com/mind-engage/pizzaquiz/internal/quiz"
	"github.com/mind-engage/pizzaquiz/internal/store"
	"github.com/mind-engage/pizzaquiz/internal/trainer"
)

var errDiskFull = errors.New("disk full")

// failingStore wraps a real store and fails Put once armed.
type failingStore struct {
	store.Store
	mu      sync.Mutex
	failPut bool
}

func (f *failingStore) Put(ctx context.Context, id string, s quiz.UserState) error {
	f.mu.Lock()
	fail := f.failPut
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.Store.Put(ctx, id, s)
}

func (f *failingStore) arm() {
	f.mu.Lock()
	f.failPut = true
	f.mu.Unlock()
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("user-%d", n)
	}
}

func newService(t *testing.T, st store.Store, opts ...trainer.Option) *trainer.Service {
	t.Helper()
	base := []trainer.Option{
		trainer.WithLogger(quietLogger()),
		trainer.WithIDGenerator(sequentialIDs()),
	}
	return trainer.New(st, catalog.Default(), quiz.NewSelector(quiz.NewRand(42)), append(base, opts...)...)
}

func TestResolve_CreatesUnknownUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newService(t, st)

	id, s, created, err := svc.Resolve(ctx, "never-seen")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !created || id != "user-1" {
		t.Fatalf("expected new id user-1, got %q created=%v", id, created)
	}
	if len(s.Views) != catalog.Default().Len() {
		t.Errorf("expected zeroed counters for every item, got %d", len(s.Views))
	}
	if _, err := st.Get(ctx, id); err != nil {
		t.Errorf("new record not persisted: %v", err)
	}

	again, _, created, err := svc.Resolve(ctx, id)
	if err != nil || created || again != id {
		t.Errorf("known id should resolve to itself: %q created=%v err=%v", again, created, err)
	}
}

func TestReview_CountsViewsAndUnlocksQuiz(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory(), trainer.WithQuizReadyViews(2))

	first, err := svc.Review(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	id := first.UserID
	if first.Counters.Views != 1 {
		t.Errorf("expected views=1 after first review, got %d", first.Counters.Views)
	}
	if len(first.Sections) == 0 {
		t.Error("expected topping sections for the reviewed item")
	}

	seen := map[string]int{first.Item.Name: 1}
	ready := first.QuizReady
	for i := 0; i < 60 && !ready; i++ {
		r, err := svc.Review(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		seen[r.Item.Name]++
		if r.Counters.Views != seen[r.Item.Name] {
			t.Fatalf("views for %s: got %d want %d", r.Item.Name, r.Counters.Views, seen[r.Item.Name])
		}
		ready = r.QuizReady
		if ready && r.Counters.Views < 2 {
			t.Fatalf("quiz unlocked at %d views", r.Counters.Views)
		}
	}
	if !ready {
		t.Error("expected some item to reach the quiz threshold")
	}
}

func TestQuiz_DoesNotRevealOrCountViews(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newService(t, st)

	q, err := svc.Quiz(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if q.Counters.Views != 0 {
		t.Errorf("quiz counted a view: %d", q.Counters.Views)
	}
	if len(q.Sections) != len(catalog.Default().QuizSections()) {
		t.Errorf("expected all quiz sections, got %d", len(q.Sections))
	}
	rec, _ := st.Get(ctx, q.UserID)
	if cur, ok := rec.CurrentItem(); !ok || cur != q.Item {
		t.Errorf("current not persisted: %q %v", cur, ok)
	}
}

func TestSubmit_ExactAnswer(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())

	q, err := svc.Quiz(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	it, _ := catalog.Default().Lookup(q.Item)

	res, err := svc.Submit(ctx, q.UserID, it.Toppings)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Outcome.Exact || res.Counters.Correct != 1 || res.Counters.Wrong != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(res.Outcome.Missed) != 0 || len(res.Outcome.Extra) != 0 {
		t.Errorf("exact answer should have no missed/extra: %+v", res.Outcome)
	}

	status, err := svc.Status(ctx, q.UserID)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range status.Status.Learning {
		if n == q.Item {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q in learning bucket: %+v", q.Item, status.Status)
	}
}

func TestSubmit_WithoutCurrentItem(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newService(t, st)

	res, err := svc.Submit(ctx, "", []string{"Mozzarella"})
	if !errors.Is(err, quiz.ErrNoCurrentItem) {
		t.Fatalf("expected ErrNoCurrentItem, got %v", err)
	}
	rec, _ := st.Get(ctx, res.UserID)
	for name, n := range rec.Wrong {
		if n != 0 {
			t.Errorf("wrong[%s] changed to %d", name, n)
		}
	}
}

func TestSubmit_PersistFailureIsReported(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Store: store.NewMemory()}
	svc := newService(t, fs)

	q, err := svc.Quiz(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	fs.arm()
	if _, err := svc.Submit(ctx, q.UserID, []string{"Mozzarella"}); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}

	rec, _ := fs.Store.Get(ctx, q.UserID)
	if rec.Wrong[q.Item] != 0 || rec.Correct[q.Item] != 0 {
		t.Errorf("failed submit must not be recorded: %+v", rec)
	}
}

func TestReset_RetentionPolicy(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name        string
		deleteOnRst bool
		wantCount   int
	}{
		{"retain", false, 1},
		{"delete", true, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			svc := newService(t, st, trainer.WithRetention(trainer.Retention{DeleteOnReset: tc.deleteOnRst}))

			r, err := svc.Review(ctx, "")
			if err != nil {
				t.Fatal(err)
			}
			if err := svc.Reset(ctx, r.UserID); err != nil {
				t.Fatalf("reset: %v", err)
			}
			if n, _ := svc.Stats(ctx); n != tc.wantCount {
				t.Errorf("records after reset: got %d want %d", n, tc.wantCount)
			}
			// resetting twice is harmless
			if err := svc.Reset(ctx, r.UserID); err != nil {
				t.Errorf("second reset: %v", err)
			}
		})
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	keep := newService(t, st)
	if _, err := keep.Review(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if n, err := keep.Prune(ctx, time.Now().Add(24*time.Hour)); err != nil || n != 0 {
		t.Errorf("zero TTL must keep everything: %d %v", n, err)
	}

	svc := newService(t, st, trainer.WithRetention(trainer.Retention{IdleTTL: time.Hour}))
	if n, err := svc.Prune(ctx, time.Now()); err != nil || n != 0 {
		t.Errorf("fresh record pruned: %d %v", n, err)
	}
	if n, err := svc.Prune(ctx, time.Now().Add(2*time.Hour)); err != nil || n != 1 {
		t.Errorf("idle record not pruned: %d %v", n, err)
	}
}

func TestService_ConcurrentSubmitsForOneUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())

	q, err := svc.Quiz(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, q.UserID, nil); err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	res, err := svc.Submit(ctx, q.UserID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Counters.Wrong != n+1 {
		t.Errorf("lost updates: wrong=%d want %d", res.Counters.Wrong, n+1)
	}
}

func TestLookup_DoesNotCreate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newService(t, st)

	if _, err := svc.Lookup(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n, _ := st.Count(ctx); n != 0 {
		t.Errorf("lookup created a record")
	}
}

func TestQuiz_NegativeStoredCountersAreClamped(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := newService(t, st)

	rec := quiz.NewUserState(catalog.Default())
	for _, name := range catalog.Default().Names() {
		rec.Correct[name] = -3
		rec.Wrong[name] = -1
	}
	if err := st.Put(ctx, "edited", rec); err != nil {
		t.Fatal(err)
	}

	q, err := svc.Quiz(ctx, "edited")
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if q.Counters.Correct != 0 || q.Counters.Wrong != 0 {
		t.Errorf("expected clamped counters, got %+v", q.Counters)
	}
	saved, _ := st.Get(ctx, "edited")
	for name, n := range saved.Correct {
		if n < 0 {
			t.Errorf("correct[%s] still negative after save: %d", name, n)
		}
	}
}
