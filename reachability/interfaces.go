package reachability

import (
	"context"
	"net"
)

// Interface is the part of a network interface that decides reachability.
type Interface struct {
	Name     string
	Up       bool
	Loopback bool
	Addrs    []net.IP
}

// InterfacePath is the default PathFunc. It scans the OS interface table.
func InterfacePath(context.Context) Status {
	ifaces, err := systemInterfaces()
	if err != nil {
		return StatusUnsatisfied
	}
	return Evaluate(ifaces)
}

// Evaluate derives a Status from an interface table: satisfied when an up,
// non-loopback interface has a global unicast address; requires connection
// when such interfaces are up but none has one.
func Evaluate(ifaces []Interface) Status {
	linkUp := false
	for _, iface := range ifaces {
		if !iface.Up || iface.Loopback {
			continue
		}
		linkUp = true
		for _, ip := range iface.Addrs {
			if ip.IsGlobalUnicast() {
				return StatusSatisfied
			}
		}
	}
	if linkUp {
		return StatusRequiresConnection
	}
	return StatusUnsatisfied
}

func systemInterfaces() ([]Interface, error) {
	nifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(nifs))
	for _, nif := range nifs {
		iface := Interface{
			Name:     nif.Name,
			Up:       nif.Flags&net.FlagUp != 0,
			Loopback: nif.Flags&net.FlagLoopback != 0,
		}
		addrs, err := nif.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			switch v := a.(type) {
			case *net.IPNet:
				iface.Addrs = append(iface.Addrs, v.IP)
			case *net.IPAddr:
				iface.Addrs = append(iface.Addrs, v.IP)
			}
		}
		out = append(out, iface)
	}
	return out, nil
}
