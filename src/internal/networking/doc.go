// Package networking decides which configured router is on the machine's
// current network and which local interface the router sees.
//
// # Router selection
//
// Local IPv4 networks are read from the interfaces on every query
// (LocalNetworks). Candidates keeps the routers whose network_ip, or the host
// of their configured address, lies in one of them:
//
//	routers ──▶ network_ip in local net? ──yes──▶ Candidate{Address: network_ip}
//	                    │no
//	                    ▼
//	            address host in local net? ──yes──▶ Candidate{Address: address}
//	                    │no
//	                    ▼
//	            resolved host in local net? ──yes──▶ Candidate{Address: address}
//
// Logging in to the candidates is left to the caller.
//
// # Interface correlation
//
// CorrelateInterfaces joins local interfaces with the router's client table by
// MAC, and ChooseActiveInterface picks the first online one.
//
// On Linux interfaces are enumerated through netlink, elsewhere through
// package net.
package networking
