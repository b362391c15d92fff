//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/pillboard/pillboard/internal/engine"
)

// The wasm build drives a local, single-user engine directly from browser
// pointer events, with no server round-trip.

var eng *engine.Engine

func main() {
	eng = engine.New(engine.DefaultRules())

	pillboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	pillboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	pillboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	pillboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	pillboardEngine.Set("click", js.FuncOf(click))
	pillboardEngine.Set("pointerLeave", js.FuncOf(pointerLeave))
	pillboardEngine.Set("reset", js.FuncOf(reset))

	// --- Queries (frontend ← engine) ---
	pillboardEngine.Set("snapshot", js.FuncOf(snapshot))
	pillboardEngine.Set("hitTest", js.FuncOf(hitTest))
	pillboardEngine.Set("state", js.FuncOf(state))

	js.Global().Set("pillboardEngine", pillboardEngine)
	js.Global().Set("pillboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	target := ""
	if len(args) > 3 && args[3].Type() == js.TypeString {
		target = args[3].String()
	}
	eng.PointerDown(args[0].Float(), args[1].Float(), args[2].Int(), target)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func click(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.Click(args[0].Float(), args[1].Float()))
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	eng.PointerLeave()
	return nil
}

func reset(this js.Value, args []js.Value) interface{} {
	eng = engine.New(engine.DefaultRules())
	return nil
}

// --- Query Handlers ---

func snapshot(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Snapshot())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func state(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.State())
}
