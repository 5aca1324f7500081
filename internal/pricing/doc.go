// Package pricing renders pricing plan cards and the pricing section that
// composes them.
//
// Both components implement templ.Component and render as a pure function of
// their configuration and, for Section, the current selection. Hosts forward
// user activation to Card.Activate or Section.Activate and re-render after
// the transition; Section.Subscribe reports each transition.
//
// Malformed input never fails the render. A card missing its title, price,
// or features renders nothing, and a section without plans renders a
// placeholder. Both report through the configured Diagnostics sink.
package pricing
