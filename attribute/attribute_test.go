package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder is a test Observer that records every (old, new) pair it is
// notified of, in order.
type recorder struct {
	updates [][2]*Attribute
}

func (r *recorder) Update(old, new *Attribute) {
	r.updates = append(r.updates, [2]*Attribute{old, new})
}

func Test_Registry_New_UniqueNames(t *testing.T) {
	reg := NewRegistry()

	a1 := reg.New("ctxA", "x", "")
	a2 := reg.New("ctxA", "x", "")
	a3 := reg.New("ctxB", "x", "")

	assert.NotEqual(t, a1.UniqueName(), a2.UniqueName(), "I1: distinct registrations of the same base/context must differ")
	assert.Equal(t, "x_0", a1.UniqueName())
	assert.Equal(t, "x_1", a2.UniqueName())
	assert.Equal(t, "x_2", a3.UniqueName(), "a distinct context still advances the shared per-base counter")
}

func Test_Registry_New_IdentityReuse(t *testing.T) {
	reg := NewRegistry()

	a1 := reg.New("ctx", "y", "obj1")
	a2 := reg.New("ctx", "y", "obj1")
	a3 := reg.New("ctx", "y", "obj2")

	assert.Equal(t, a1.ordinal, a2.ordinal, "reusing the same identity must return the same ordinal")
	assert.NotEqual(t, a1.ordinal, a3.ordinal)
	assert.Same(t, a1, a2, "identity reuse must return the same Attribute, not a lookalike, or merges/observers on one would not be seen by the other")
}

func Test_Attribute_Merge_NotifiesAllObservers(t *testing.T) {
	a := &Attribute{base: "p", ordinal: 0}
	b := &Attribute{base: "p", ordinal: 1}

	r1 := &recorder{}
	r2 := &recorder{}
	a.Attach(r1)
	a.Attach(r2)

	a.Merge(b)

	require := assert.New(t)
	require.Len(r1.updates, 1)
	require.Len(r2.updates, 1)
	require.Same(a, r1.updates[0][0])
	require.Same(b, r1.updates[0][1])
	require.True(a.Merged())
	require.Same(b, a.Resolve())
}

func Test_Attribute_Merge_Idempotent(t *testing.T) {
	a := &Attribute{base: "p", ordinal: 0}
	b := &Attribute{base: "p", ordinal: 1}

	r := &recorder{}
	a.Attach(r)

	a.Merge(b)
	a.Merge(b) // second call on an already-merged pair must be a no-op

	assert.Len(t, r.updates, 1)
}

func Test_Attribute_Merge_TransitiveResolve(t *testing.T) {
	a := &Attribute{base: "p", ordinal: 0}
	b := &Attribute{base: "p", ordinal: 1}
	c := &Attribute{base: "p", ordinal: 2}

	a.Merge(b)
	b.Merge(c)

	assert.Same(t, c, a.Resolve(), "I2: no dangling reference should remain after a chain of merges")
}

func Test_Attribute_Detach_AbsentObserverPanics(t *testing.T) {
	a := &Attribute{base: "p", ordinal: 0}

	assert.Panics(t, func() {
		a.Detach(&recorder{})
	})
}

func Test_Attribute_Observer_DetachDuringNotify(t *testing.T) {
	a := &Attribute{base: "p", ordinal: 0}
	b := &Attribute{base: "p", ordinal: 1}

	var detaching *detachingObserver
	detaching = &detachingObserver{target: a}
	other := &recorder{}

	a.Attach(detaching)
	a.Attach(other)

	assert.NotPanics(t, func() {
		a.Merge(b)
	})
	assert.Len(t, other.updates, 1, "observers present at notify-time must still be notified even if another observer detaches mid-iteration")
}

type detachingObserver struct {
	target *Attribute
}

func (d *detachingObserver) Update(old, new *Attribute) {
	// simulate an observer that reacts to the merge by detaching itself
	// (and possibly others) from the subject - this must not corrupt the
	// in-progress notification snapshot.
	defer func() { recover() }()
	old.Detach(d)
}
