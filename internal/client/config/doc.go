// Package config loads runtime configuration for the WarrantyGuard client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags -a, -u, -d, -t and -l.
//
// JSON example:
//
//	{
//	  "server_url": "http://backup.lan:3000",
//	  "user_id": "alice",
//	  "database_path": "/var/lib/warrantyguard/wg.db",
//	  "request_timeout": "10s"
//	}
package config
