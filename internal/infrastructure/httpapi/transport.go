package httpapi

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/duskline/hexsim/internal/application/common"
)

// envelope is the wire shape every command arrives in: a type name
// matching one of the Command structs in commands.go, plus its payload.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// decoders maps an envelope's Type string to a zero-value Command the
// payload unmarshals into, mirroring RegisterCommands' registered set.
var decoders = map[string]func() common.Request{
	"AddShip":              func() common.Request { return &AddShipCommand{} },
	"AddStation":           func() common.Request { return &AddStationCommand{} },
	"ResolveAwaitingSignal": func() common.Request { return &ResolveAwaitingSignalCommand{} },
	"SetRunState":          func() common.Request { return &SetRunStateCommand{} },
}

// Handler serves POST /commands: decode the envelope, unmarshal its
// payload into the matching Command struct, and dispatch it through m.
func Handler(m common.Mediator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var env envelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		newCmd, ok := decoders[env.Type]
		if !ok {
			http.Error(w, "unknown command type "+env.Type, http.StatusBadRequest)
			return
		}
		cmd := newCmd()
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, cmd); err != nil {
				http.Error(w, "invalid command payload: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
		// Mediator handlers are registered against the struct type, not
		// a pointer, so dereference before dispatch.
		result, err := m.Send(r.Context(), derefCommand(cmd))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// derefCommand unwraps the pointer json.Unmarshal needed into the value
// type RegisterCommands keyed its handlers by.
func derefCommand(cmd common.Request) common.Request {
	v := reflect.ValueOf(cmd)
	if v.Kind() == reflect.Ptr {
		return v.Elem().Interface()
	}
	return cmd
}
