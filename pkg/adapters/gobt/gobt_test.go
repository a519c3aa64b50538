package gobt

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/bevtree/pkg/domain"
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedStepper struct {
	steps atomic.Int32
	fn    func(n int32) (domain.RunningStatus, bool)
}

func (s *scriptedStepper) Step(any, any) (domain.RunningStatus, bool) {
	return s.fn(s.steps.Add(1))
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, bt.Running, ToStatus(domain.Executing, true))
	assert.Equal(t, bt.Success, ToStatus(domain.Finish, true))
	assert.Equal(t, bt.Failure, ToStatus(domain.ErrorTransition, true))
	assert.Equal(t, bt.Failure, ToStatus(domain.Finish, false), "not eligible")

	assert.Equal(t, domain.Executing, FromStatus(bt.Running, nil))
	assert.Equal(t, domain.Finish, FromStatus(bt.Success, nil))
	assert.Equal(t, domain.ErrorTransition, FromStatus(bt.Failure, nil))
	assert.Equal(t, domain.ErrorTransition, FromStatus(bt.Success, errors.New("boom")))
}

func TestNode_InsideSequence(t *testing.T) {
	s := &scriptedStepper{fn: func(n int32) (domain.RunningStatus, bool) {
		if n < 2 {
			return domain.Executing, true
		}
		return domain.Finish, true
	}}

	var after int
	tail := bt.New(func([]bt.Node) (bt.Status, error) {
		after++
		return bt.Success, nil
	})
	seq := bt.New(bt.Sequence, Node(s, nil, nil), tail)

	status, err := seq.Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Running, status)
	assert.Equal(t, 0, after)

	status, err = seq.Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Success, status)
	assert.Equal(t, 1, after)
}

func TestNode_Ticker(t *testing.T) {
	s := &scriptedStepper{fn: func(int32) (domain.RunningStatus, bool) {
		return domain.Executing, true
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticker := bt.NewTicker(ctx, 2*time.Millisecond, Node(s, nil, nil))

	require.Eventually(t, func() bool { return s.steps.Load() >= 3 }, 5*time.Second, time.Millisecond)
	ticker.Stop()
	<-ticker.Done()
}

func TestAction(t *testing.T) {
	calls := 0
	node := bt.New(func([]bt.Node) (bt.Status, error) {
		calls++
		if calls == 1 {
			return bt.Running, nil
		}
		return bt.Success, nil
	})

	a := Action(node, nil)
	a.Enter(nil)
	assert.Equal(t, domain.Executing, a.Execute(nil, nil))
	assert.Equal(t, domain.Finish, a.Execute(nil, nil))
	a.Exit(nil, domain.Finish)
}

func TestAction_Error(t *testing.T) {
	boom := errors.New("boom")
	var got error
	a := Action(bt.New(func([]bt.Node) (bt.Status, error) { return bt.Success, boom }), func(err error) { got = err })

	assert.Equal(t, domain.ErrorTransition, a.Execute(nil, nil))
	assert.ErrorIs(t, got, boom)

	assert.Equal(t, domain.ErrorTransition, Action(nil, nil).Execute(nil, nil))
}
