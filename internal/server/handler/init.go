package handler

import (
	"weft/internal/server/dispatch"
)

var dispatcher *dispatch.Dispatcher

// Init wires the runner dispatcher, called once from main before the
// routes are served.
func Init(d *dispatch.Dispatcher) {
	dispatcher = d
}
