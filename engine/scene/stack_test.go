package scene

import (
	"strings"
	"testing"

	"github.com/mirafall/strafe/engine/event"
)

// probe records every lifecycle call and returns scripted Update results.
type probe struct {
	BaseScene
	name   string
	log    *[]string
	script []Result
}

func (p *probe) record(call string) {
	*p.log = append(*p.log, p.name+"."+call)
}

func (p *probe) OnCreate(*Context)  { p.record("create") }
func (p *probe) OnDestroy(*Context) { p.record("destroy") }
func (p *probe) OnEnter(*Context)   { p.record("enter") }
func (p *probe) OnExit(*Context)    { p.record("exit") }

func (p *probe) Update(*Context, float64) Result {
	p.record("update")
	if len(p.script) == 0 {
		return Noop()
	}
	r := p.script[0]
	p.script = p.script[1:]
	return r
}

func (p *probe) ProcessInput(_ *Context, e event.InputEvent) {
	p.record("input")
}

func expectCalls(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("call order mismatch:\n got  %s\n want %s",
			strings.Join(got, ", "), strings.Join(want, ", "))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: got %s, want %s\n full: %s",
				i, got[i], want[i], strings.Join(got, ", "))
		}
	}
}

func TestPushPushPopLifecycle(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	b := &probe{name: "B", log: &log}

	st.Push(ctx, a)
	st.Push(ctx, b)
	st.Pop(ctx)

	expectCalls(t, log,
		"A.create", "A.exit", "B.create", "B.destroy", "A.enter")
}

func TestReplaceAllDestroysTopDownWithoutEnterExit(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	b := &probe{name: "B", log: &log}
	c := &probe{name: "C", log: &log}

	st.Push(ctx, a)
	st.Push(ctx, b)
	log = log[:0]

	st.ReplaceAll(ctx, c)

	expectCalls(t, log, "B.destroy", "A.destroy", "C.create")
}

func TestReplaceSwapsWithoutEnterExit(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	b := &probe{name: "B", log: &log}
	c := &probe{name: "C", log: &log}

	st.Push(ctx, a)
	st.Push(ctx, b)
	log = log[:0]

	st.Replace(ctx, c)

	expectCalls(t, log, "B.destroy", "C.create")
	if st.Len() != 2 {
		t.Errorf("expected depth 2 after replace, got %d", st.Len())
	}
	if st.Top() != c {
		t.Error("expected C on top after replace")
	}
}

func TestFirstPushFiresNoExit(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	st.Push(ctx, a)

	expectCalls(t, log, "A.create")
}

func TestPopToEmptyFiresNoEnter(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	st.Push(ctx, a)
	log = log[:0]

	st.Pop(ctx)

	expectCalls(t, log, "A.destroy")
	if !st.IsEmpty() {
		t.Error("expected empty stack")
	}
}

func TestStepAppliesExactlyOneCommand(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	b := &probe{name: "B", log: &log}
	a := &probe{name: "A", log: &log, script: []Result{Push(b)}}

	st.Push(ctx, a)
	log = log[:0]

	st.Step(ctx, 0.016)
	expectCalls(t, log, "A.update", "A.exit", "B.create")

	// B is active now; A stays dormant.
	log = log[:0]
	st.Step(ctx, 0.016)
	expectCalls(t, log, "B.update")
}

func TestInputDeliveredToPostTransitionTop(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	b := &probe{name: "B", log: &log}
	a := &probe{name: "A", log: &log, script: []Result{Push(b)}}

	st.Push(ctx, a)
	log = log[:0]

	st.Step(ctx, 0.016)
	st.DeliverInput(ctx, event.KeyEvent{})

	expectCalls(t, log, "A.update", "A.exit", "B.create", "B.input")
}

func TestPopResultFromUpdate(t *testing.T) {
	var log []string
	ctx := &Context{}
	st := NewStack()

	a := &probe{name: "A", log: &log}
	b := &probe{name: "B", log: &log, script: []Result{Pop()}}

	st.Push(ctx, a)
	st.Push(ctx, b)
	log = log[:0]

	st.Step(ctx, 0.016)
	expectCalls(t, log, "B.update", "B.destroy", "A.enter")
}
