// Package httpapi exposes the engine's world-setup and runtime-control
// commands (add-ship, add-station, resolve, run-state) over HTTP,
// dispatched through common.Mediator's reflect-keyed registry instead
// of a growing if/else chain of handlers.
package httpapi

import (
	"context"
	"fmt"
	"reflect"

	"github.com/duskline/hexsim/internal/application/common"
	"github.com/duskline/hexsim/internal/domain/hexgrid"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/domain/ship"
	"github.com/duskline/hexsim/internal/engine"
)

// AddShipCommand registers a new autonomous ship at a sector coordinate.
type AddShipCommand struct {
	ID            string `json:"id"`
	ConfigID      string `json:"config_id"`
	Q             int    `json:"q"`
	R             int    `json:"r"`
	CargoCapacity int    `json:"cargo_capacity"`
	Behavior      string `json:"behavior"`
}

// AddStationCommand registers a new station at a sector coordinate.
type AddStationCommand struct {
	ID            string `json:"id"`
	Q             int    `json:"q"`
	R             int    `json:"r"`
	CargoCapacity int    `json:"cargo_capacity"`
	MaxConcurrent int    `json:"max_concurrent"`
}

// ResolveAwaitingSignalCommand advances a ship's AwaitingSignal task,
// the only way that task kind completes.
type ResolveAwaitingSignalCommand struct {
	ShipID string `json:"ship_id"`
}

// SetRunStateCommand flips the engine between Running and Paused, the
// host-controlled tick gate.
type SetRunStateCommand struct {
	State string `json:"state"` // "running" or "paused"
}

// CommandResult is the envelope every handler below returns.
type CommandResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type handlerFunc func(ctx context.Context, request common.Request) (common.Response, error)

func (f handlerFunc) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	return f(ctx, request)
}

// RegisterCommands wires every engine command above onto m, bound to e.
// A host embeds hexsim's engine directly and never needs this surface;
// it exists for non-Go hosts driving the engine purely over HTTP.
func RegisterCommands(m common.Mediator, e *engine.Engine) error {
	register := func(sample common.Request, fn handlerFunc) error {
		return m.Register(reflect.TypeOf(sample), fn)
	}

	if err := register(AddShipCommand{}, func(_ context.Context, req common.Request) (common.Response, error) {
		cmd := req.(AddShipCommand)
		coord := hexgrid.Coord{Q: cmd.Q, R: cmd.R}
		s := ship.New(shared.EntityID(cmd.ID), cmd.ConfigID, coord, cmd.CargoCapacity)
		s.Behavior.Name = cmd.Behavior
		e.AddShip(s)
		return CommandResult{OK: true}, nil
	}); err != nil {
		return err
	}

	if err := register(AddStationCommand{}, func(_ context.Context, req common.Request) (common.Response, error) {
		cmd := req.(AddStationCommand)
		coord := hexgrid.Coord{Q: cmd.Q, R: cmd.R}
		e.AddStation(shared.EntityID(cmd.ID), coord, cmd.CargoCapacity, cmd.MaxConcurrent)
		return CommandResult{OK: true}, nil
	}); err != nil {
		return err
	}

	if err := register(ResolveAwaitingSignalCommand{}, func(_ context.Context, req common.Request) (common.Response, error) {
		cmd := req.(ResolveAwaitingSignalCommand)
		if err := e.ResolveAwaitingSignal(shared.EntityID(cmd.ShipID)); err != nil {
			return CommandResult{OK: false, Message: err.Error()}, nil
		}
		return CommandResult{OK: true}, nil
	}); err != nil {
		return err
	}

	if err := register(SetRunStateCommand{}, func(_ context.Context, req common.Request) (common.Response, error) {
		cmd := req.(SetRunStateCommand)
		switch cmd.State {
		case "running":
			e.SetState(engine.Running)
		case "paused":
			e.SetState(engine.Paused)
		default:
			return CommandResult{OK: false, Message: fmt.Sprintf("unknown run state %q", cmd.State)}, nil
		}
		return CommandResult{OK: true}, nil
	}); err != nil {
		return err
	}

	return nil
}
