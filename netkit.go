// Package netkit provides a small network toolkit: a multi-client TCP echo
// listener, an outbound TCP connector with an interactive relay, and a
// breadth-first, same-domain web crawler.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, tcp/).
package netkit
