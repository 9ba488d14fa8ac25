// Package runtime implements the order-taking state machine.
//
// A turn runs: checkout shortcut check, validation, validity gate, order
// processing, intent routing, then one of add-to-cart, checkout or continue.
// Each stage is a function from a Session to the next Session; Engine.Turn
// composes them and reports the route taken.
package runtime
