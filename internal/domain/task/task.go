// Package task implements the tagged-union primitive task model and the
// per-ship task queue: promotion from queued to active, lifecycle
// events, and the cancelable-while-queued / cancelable-while-active
// flags each task kind declares statically.
package task

import "github.com/duskline/hexsim/internal/domain/shared"

// Kind identifies one of the twelve primitive task types.
type Kind int

const (
	KindAwaitingSignal Kind = iota
	KindRequestAccess
	KindDockAtEntity
	KindUndock
	KindMoveToEntity
	KindMoveToPosition
	KindMoveToSector
	KindUseGate
	KindExchangeWares
	KindMineAsteroid
	KindHarvestGas
	KindConstruct
)

func (k Kind) String() string {
	switch k {
	case KindAwaitingSignal:
		return "AwaitingSignal"
	case KindRequestAccess:
		return "RequestAccess"
	case KindDockAtEntity:
		return "DockAtEntity"
	case KindUndock:
		return "Undock"
	case KindMoveToEntity:
		return "MoveToEntity"
	case KindMoveToPosition:
		return "MoveToPosition"
	case KindMoveToSector:
		return "MoveToSector"
	case KindUseGate:
		return "UseGate"
	case KindExchangeWares:
		return "ExchangeWares"
	case KindMineAsteroid:
		return "MineAsteroid"
	case KindHarvestGas:
		return "HarvestGas"
	case KindConstruct:
		return "Construct"
	default:
		return "Unknown"
	}
}

// staticConfig is per-Kind metadata declared once: the
// cancellation-semantics table for every task kind.
type staticConfig struct {
	cancelableWhileQueued bool
	cancelableWhileActive bool
}

var configs = map[Kind]staticConfig{
	KindAwaitingSignal: {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindRequestAccess:  {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindDockAtEntity:   {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindUndock:         {cancelableWhileQueued: true, cancelableWhileActive: false},
	KindMoveToEntity:   {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindMoveToPosition: {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindMoveToSector:   {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindUseGate:        {cancelableWhileQueued: true, cancelableWhileActive: false},
	KindExchangeWares:  {cancelableWhileQueued: true, cancelableWhileActive: false},
	KindMineAsteroid:   {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindHarvestGas:     {cancelableWhileQueued: true, cancelableWhileActive: true},
	KindConstruct:      {cancelableWhileQueued: true, cancelableWhileActive: true},
}

func (k Kind) CancelableWhileQueued() bool { return configs[k].cancelableWhileQueued }
func (k Kind) CancelableWhileActive() bool { return configs[k].cancelableWhileActive }

// InsertMode controls where a newly created task lands in the queue.
type InsertMode int

const (
	Append InsertMode = iota
	Prepend
)

// Status mirrors shared.LifecycleStatus but is kept local so callers
// matching on task status don't need to import shared directly.
type Status = shared.LifecycleStatus

// Task is one instance of a primitive task queued or active on a ship.
// Params carries kind-specific fields (target id, desired distance,
// reserved amounts, ...) as a loosely-typed map; runners know their own
// kind's shape. GroupID ties a RequestAccess task to the dependent
// dock/exchange/undock tasks that must collapse together if the target
// vanishes.
type Task struct {
	ID      shared.EntityID
	Kind    Kind
	GroupID string
	Params  map[string]any

	lifecycle *shared.LifecycleStateMachine
	state     map[string]any // runtime state attached at promotion (finishes_at, next_update, start_position, ...)
}

func New(id shared.EntityID, kind Kind, params map[string]any, nowFn func() shared.Timestamp) *Task {
	if params == nil {
		params = map[string]any{}
	}
	return &Task{
		ID:        id,
		Kind:      kind,
		Params:    params,
		lifecycle: shared.NewLifecycleStateMachine(nowFn),
		state:     map[string]any{},
	}
}

func (t *Task) Status() Status                 { return t.lifecycle.Status() }
func (t *Task) IsActive() bool                 { return t.lifecycle.IsActive() }
func (t *Task) IsFinished() bool                { return t.lifecycle.IsFinished() }
func (t *Task) Start() error                   { return t.lifecycle.Start() }
func (t *Task) Complete() error                { return t.lifecycle.Complete() }
func (t *Task) Cancel() error                  { return t.lifecycle.Cancel() }
func (t *Task) Fail(err error) error           { return t.lifecycle.Fail(err) }

func (t *Task) SetState(key string, val any) { t.state[key] = val }
func (t *Task) State(key string) (any, bool) { v, ok := t.state[key]; return v, ok }

func (t *Task) Param(key string) (any, bool) { v, ok := t.Params[key]; return v, ok }
