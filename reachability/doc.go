// Package reachability answers whether a network route is currently
// available.
//
// A Checker offers a one-shot Probe and a Watch stream of readings. Monitor
// is the default implementation: it scans the OS interface table and can
// confirm the route by dialing a probe address.
//
//	m := reachability.NewMonitor(reachability.Config{ProbeAddress: "1.1.1.1:443"})
//	if !m.Probe(ctx) {
//	    return errOffline
//	}
//
//	ctx, cancel := context.WithCancel(ctx)
//	defer cancel() // stops the watcher
//	for online := range m.Watch(ctx) {
//	    ...
//	}
package reachability
