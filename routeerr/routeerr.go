// Package routeerr declares the sentinel errors raised across the routing
// pipeline (config, netio, containers, preprocess, routingarea, route),
// kept in one leaf package so every layer can both raise and check them
// with errors.Is without import cycles.
package routeerr

import "errors"

var (
	// ErrIncompatibleGroup is raised when a net group's members don't all
	// share one layer. Such a group is dropped before routing rather than
	// causing a hard failure. A group whose first net is off the run's
	// target layer is also dropped, without this error.
	ErrIncompatibleGroup = errors.New("route: incompatible net group: nets disagree on layer")

	// ErrMixedShieldType is raised when a net group mixes more than one
	// shield type, violating ShieldedNetList's single-shield-type rule.
	ErrMixedShieldType = errors.New("route: incompatible net group: mixed shield types")

	// ErrUnsplittableTrunk is raised when a single net is wider than any
	// routing area it could be divided into, so trunk division cannot
	// produce any feasible child net.
	ErrUnsplittableTrunk = errors.New("route: net cannot be split to fit any routing area")

	// ErrUnplaceableBundle is raised when no sliding window of consecutive
	// routing areas can fit a bundle's OverlappedIntervalDicts.
	ErrUnplaceableBundle = errors.New("route: bundle has no feasible placement window")

	// ErrUnplaceableOID is raised when an OverlappedIntervalDict cannot be
	// placed into any remaining routing area ceiling.
	ErrUnplaceableOID = errors.New("route: overlapped interval dict has no feasible ceiling")

	// ErrMixedLocalGlobal is raised when a single net group straddles both
	// a local (blockage-divided) column and the unblocked global area.
	ErrMixedLocalGlobal = errors.New("route: net group spans both local and global routing")

	// ErrBlockageCollision is raised when a blockage's y-interval overlaps
	// an allocation already present in a routing area's y-tree.
	ErrBlockageCollision = errors.New("route: blockage collides with an existing allocation")

	// ErrInvalidInput is raised for malformed netlist/problem-settings/
	// reserved-area input that fails validation before routing begins.
	ErrInvalidInput = errors.New("route: invalid input")

	// ErrAllocationInfeasible is the low-level failure RoutingArea.Allocate
	// raises when a single placeable does not fit below a given ceiling.
	// schedule and channel check Allocatable before calling Allocate, so
	// they never act on this error; whatever they leave unplaced is
	// reported by route as ErrUnplaceableOID/ErrUnplaceableBundle.
	ErrAllocationInfeasible = errors.New("route: allocation does not fit below ceiling")
)
