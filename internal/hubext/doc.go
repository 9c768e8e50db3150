// Package hubext wires the Hub navigation commands into a host application.
//
// When the host runs under a Hub (a non-empty hub prefix), Activate derives
// the restart, control panel and logout URLs from the host configuration and
// registers one command for each. Control panel and logout are also offered
// in the command palette when the host has one; restart is deliberately left
// out of it. Without a hub prefix Activate does nothing at all.
package hubext
