// Package config reads and writes the keen-tray configuration file.
//
// The file is TOML with a [general] table and one [[router]] table per
// configured router:
//
//	config_version = 1
//
//	[general]
//	  request_timeout_seconds = 10
//	  refresh_interval_seconds = 30
//	  api_listen_addr = "127.0.0.1:8097"
//
//	[[router]]
//	  name = "home"
//	  address = "http://192.168.1.1"
//	  login = "admin"
//	  network_ip = "192.168.1.1"
//	  keendns_urls = ["home.keenetic.pro"]
//
// Passwords are never stored here; see package credentials.
//
// A missing file is not an error: LoadConfig returns the defaults with no
// routers, which is a normal state for a fresh installation. Watcher reports
// changes made to the file by other processes.
package config
