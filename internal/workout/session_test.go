package workout

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/history"
	"github.com/claude/liftlog/internal/models"
)

var testStart = time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *history.Log, *time.Time) {
	t.Helper()
	h := history.New(nil, nil)
	s := New(h, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := testStart
	s.now = func() time.Time { return clock }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, h, &clock
}

func pushTemplate() models.WorkoutTemplate {
	return models.WorkoutTemplate{
		ID:   "push",
		Name: "Push",
		Exercises: []models.TemplateExercise{
			{Name: "Bench Press", MuscleGroup: "Chest", Sets: 3},
			{Name: "Dips", MuscleGroup: "Triceps", Sets: 3},
		},
	}
}

func assertOrdinals(t *testing.T, sets []models.Set) {
	t.Helper()
	for i, set := range sets {
		if set.SetNumber != i+1 {
			t.Fatalf("sets[%d].SetNumber = %d, want %d", i, set.SetNumber, i+1)
		}
	}
}

// TestStartFromTemplate verifies a template is instantiated with fresh ids,
// the default set count, and only the first exercise expanded.
func TestStartFromTemplate(t *testing.T) {
	s, _, _ := newTestStore(t)
	w := s.StartFromTemplate(pushTemplate())

	cur, ok := s.Current()
	if !ok {
		t.Fatal("expected an active session")
	}
	if cur.ID != w.ID || cur.TemplateID != "push" || cur.Name != "Push" {
		t.Errorf("session = %+v", cur)
	}
	if !cur.StartTime.Equal(testStart) {
		t.Errorf("start = %v, want %v", cur.StartTime, testStart)
	}
	if len(cur.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(cur.Exercises))
	}
	if !cur.Exercises[0].Expanded || cur.Exercises[1].Expanded {
		t.Error("only the first exercise should start expanded")
	}
	seen := map[string]bool{}
	for _, ex := range cur.Exercises {
		if len(ex.Sets) != 3 {
			t.Errorf("%s sets = %d, want 3", ex.Name, len(ex.Sets))
		}
		assertOrdinals(t, ex.Sets)
		for _, set := range ex.Sets {
			if seen[set.ID] {
				t.Errorf("duplicate set id %s", set.ID)
			}
			seen[set.ID] = true
		}
	}
}

// TestStartReplacesSession verifies Start overwrites an in-progress session.
func TestStartReplacesSession(t *testing.T) {
	s, h, _ := newTestStore(t)
	s.StartFromTemplate(pushTemplate())
	s.Start(models.Workout{Name: "Other"})

	cur, _ := s.Current()
	if cur.Name != "Other" {
		t.Errorf("name = %q, want Other", cur.Name)
	}
	if h.Len() != 0 {
		t.Errorf("replacing a session must not record history, got %d entries", h.Len())
	}
}

// TestEndRecordsHistory verifies the reference session: 2 exercises × 3 sets,
// 2 completed at 10 × 5 each, ends with volume 200.
func TestEndRecordsHistory(t *testing.T) {
	s, h, clock := newTestStore(t)
	w := s.StartFromTemplate(pushTemplate())
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets[:2] {
			s.UpdateSet(ex.ID, set.ID, models.SetFieldWeight, "10")
			s.UpdateSet(ex.ID, set.ID, models.SetFieldReps, "5")
			s.CompleteSet(ex.ID, set.ID)
		}
	}
	*clock = testStart.Add(30 * time.Minute)

	rec, ok := s.End()
	if !ok {
		t.Fatal("End reported no session")
	}
	if rec.TotalVolume != 200 {
		t.Errorf("volume = %v, want 200", rec.TotalVolume)
	}
	if rec.Duration != 1800 {
		t.Errorf("duration = %d, want 1800", rec.Duration)
	}
	if rec.CompletedSets != 4 || rec.TotalSets != 6 {
		t.Errorf("sets = %d/%d, want 4/6", rec.CompletedSets, rec.TotalSets)
	}
	if s.Active() {
		t.Error("session should be cleared after End")
	}
	if got := h.Entries(); len(got) != 1 || got[0].ID != rec.ID {
		t.Errorf("history = %+v", got)
	}
}

// TestEndWithoutSession verifies End is a silent no-op with no session.
func TestEndWithoutSession(t *testing.T) {
	s, h, _ := newTestStore(t)
	if _, ok := s.End(); ok {
		t.Error("End without a session should report false")
	}
	if h.Len() != 0 {
		t.Error("no history should be recorded")
	}
}

// TestCancel verifies Cancel clears the session without history.
func TestCancel(t *testing.T) {
	s, h, _ := newTestStore(t)
	s.StartFromTemplate(pushTemplate())
	s.Cancel()
	if s.Active() || h.Len() != 0 {
		t.Errorf("active = %v, history = %d", s.Active(), h.Len())
	}
}

// TestMutationsWithoutSession verifies every editor no-ops when idle.
func TestMutationsWithoutSession(t *testing.T) {
	s, _, _ := newTestStore(t)
	if _, ok := s.AddExercise("Curl", "Biceps"); ok {
		t.Error("AddExercise should fail")
	}
	if _, ok := s.AddSet("x"); ok {
		t.Error("AddSet should fail")
	}
	if s.CompleteSet("x", "y") || s.DeleteSet("x", "y") || s.ToggleExpand("x") || s.RemoveExercise("x") {
		t.Error("editors should report false")
	}
	if s.Active() {
		t.Error("no session should have been created")
	}
}

// TestCompleteSetIdempotent verifies completing twice keeps the first timestamp.
func TestCompleteSetIdempotent(t *testing.T) {
	s, _, clock := newTestStore(t)
	w := s.StartFromTemplate(pushTemplate())
	ex, set := w.Exercises[0], w.Exercises[0].Sets[0]

	if !s.CompleteSet(ex.ID, set.ID) {
		t.Fatal("first CompleteSet should change state")
	}
	*clock = testStart.Add(time.Minute)
	if s.CompleteSet(ex.ID, set.ID) {
		t.Error("second CompleteSet should be a no-op")
	}

	cur, _ := s.Current()
	got := cur.Exercises[0].Sets[0]
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(testStart) {
		t.Errorf("set = %+v, want completed at %v", got, testStart)
	}

	if !s.UncompleteSet(ex.ID, set.ID) {
		t.Fatal("UncompleteSet should change state")
	}
	cur, _ = s.Current()
	if cur.Exercises[0].Sets[0].Completed || cur.Exercises[0].Sets[0].CompletedAt != nil {
		t.Error("set should be back to pending")
	}
}

// TestUpdateSetUnknownField verifies only weight and reps are editable.
func TestUpdateSetUnknownField(t *testing.T) {
	s, _, _ := newTestStore(t)
	w := s.StartFromTemplate(pushTemplate())
	ex, set := w.Exercises[0], w.Exercises[0].Sets[0]
	if s.UpdateSet(ex.ID, set.ID, models.SetField("rir"), "2") {
		t.Error("unknown field should be ignored")
	}
	if !s.UpdateSet(ex.ID, set.ID, models.SetFieldWeight, "abc") {
		t.Error("weight update should apply")
	}
	cur, _ := s.Current()
	if cur.Exercises[0].Sets[0].Weight != "abc" {
		t.Errorf("weight = %q, want raw text abc", cur.Exercises[0].Sets[0].Weight)
	}
}

// TestSnapshotsAreStable verifies a snapshot taken before a mutation is not
// changed by it.
func TestSnapshotsAreStable(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.StartFromTemplate(pushTemplate())
	before, _ := s.Current()
	ex, set := before.Exercises[0], before.Exercises[0].Sets[0]

	s.UpdateSet(ex.ID, set.ID, models.SetFieldReps, "12")
	s.CompleteSet(ex.ID, set.ID)
	s.AddSet(ex.ID)
	s.DeleteSet(ex.ID, set.ID)
	s.ToggleExpand(ex.ID)
	s.AddExercise("Curl", "Biceps")

	if before.Exercises[0].Sets[0].Reps != "" || before.Exercises[0].Sets[0].Completed {
		t.Error("old snapshot saw a set edit")
	}
	if len(before.Exercises[0].Sets) != 3 || len(before.Exercises) != 2 {
		t.Error("old snapshot saw a structural edit")
	}
	if !before.Exercises[0].Expanded {
		t.Error("old snapshot saw the expand toggle")
	}
}

// TestAddDeleteSetOrdinals drives random add/delete sequences and checks the
// ordinals stay 1..N in the original relative order.
func TestAddDeleteSetOrdinals(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := range 50 {
		s, _, _ := newTestStore(t)
		s.Start(models.Workout{Name: "r"})
		ex, _ := s.AddExercise("Squat", "Legs")

		var order []string
		cur, _ := s.Current()
		order = append(order, cur.Exercises[0].Sets[0].ID)

		for range 30 {
			if len(order) == 0 || rng.Intn(3) > 0 {
				set, ok := s.AddSet(ex.ID)
				if !ok {
					t.Fatal("AddSet failed")
				}
				order = append(order, set.ID)
				continue
			}
			i := rng.Intn(len(order))
			if !s.DeleteSet(ex.ID, order[i]) {
				t.Fatalf("round %d: DeleteSet(%s) failed", round, order[i])
			}
			order = append(order[:i], order[i+1:]...)
		}

		cur, _ = s.Current()
		sets := cur.Exercises[0].Sets
		if len(sets) != len(order) {
			t.Fatalf("round %d: %d sets, want %d", round, len(sets), len(order))
		}
		assertOrdinals(t, sets)
		for i, set := range sets {
			if set.ID != order[i] {
				t.Fatalf("round %d: sets[%d] = %s, want %s", round, i, set.ID, order[i])
			}
		}
	}
}

// TestRemoveExerciseAndToggle verifies exercise-level edits by id.
func TestRemoveExerciseAndToggle(t *testing.T) {
	s, _, _ := newTestStore(t)
	w := s.StartFromTemplate(pushTemplate())

	if !s.ToggleExpand(w.Exercises[1].ID) {
		t.Fatal("ToggleExpand failed")
	}
	if !s.RemoveExercise(w.Exercises[0].ID) {
		t.Fatal("RemoveExercise failed")
	}
	if s.RemoveExercise("missing") {
		t.Error("removing an unknown exercise should report false")
	}
	cur, _ := s.Current()
	if len(cur.Exercises) != 1 || cur.Exercises[0].Name != "Dips" || !cur.Exercises[0].Expanded {
		t.Errorf("exercises = %+v", cur.Exercises)
	}
}
