// Package wired is the batteries-included runtime for wirehttp servers:
// environment-driven configuration, zap logging, prometheus metrics, a
// rate-limitable accept loop serving every connection through the
// wirehttp serve loop, and fx-based lifecycle wiring.
//
// A daemon is one call:
//
//	wired.NewApp(wired.WithHandler(myHandler)).Run()
package wired
