// Package keenetic talks to the local management API of Keenetic routers.
//
// A Session performs the NDM challenge/response login and keeps the session
// cookie in its own jar. A Client layers typed RCI operations on top of a
// Session: policies, connected clients, certificates (KeenDNS names), the
// bridge address, DNS proxy servers and the hotspot mutations that assign a
// policy to a client or block it.
//
// # Login handshake
//
//	GET  /auth                  -> 200: cookie still valid, done
//	                            -> 401: X-NDM-Realm, X-NDM-Challenge
//	md5  = hex(MD5(login ":" realm ":" password))
//	sha  = hex(SHA256(challenge + md5))
//	POST /auth {"login": login, "password": sha} -> 200: authenticated
//
// Every Client method logs in first; when the cookie is still valid that is a
// single GET.
//
// # Client table
//
// The router can list one physical device several times with disjoint
// fields. Reconcile merges those rows into one ClientRecord per lower-cased
// MAC: name, ip and policy keep the first value seen, deny follows the last
// row that carries it, and the raw payload is the latest row.
//
// # Example
//
//	session := keenetic.NewSession("192.168.1.1", "admin", password)
//	client := keenetic.NewClient(session)
//	policies, err := client.ListPolicies(ctx)
//	clients, err := client.ListClients(ctx)
//	err = client.SetClientPolicy(ctx, "aa:bb:cc:dd:ee:ff", keenetic.NamedPolicy("Policy0"))
package keenetic
