// Package web hosts the pricing page over HTTP.
//
// Each visitor gets a session cookie and a mounted pricing section that lives
// in a bounded session store. Card activations arrive as htmx form posts; the
// host forwards them to the mounted section and answers with the re-rendered
// fragment, or a redirect when scripting is unavailable.
package web
