// Package config handles loading and parsing tuber configuration.
//
// Configuration is read from ~/.config/tuber/config.toml when present, then
// overridden by a .env file in the working directory and by TUBER_*
// environment variables. A missing config file is not an error; tuber works
// out of the box against a VidTube backend on localhost.
//
// Resolution order for every field:
//
//  1. Hardcoded localhost default
//  2. TOML config file value
//  3. TUBER_* environment variable
//
// Example config.toml:
//
//	api_url = "https://vidtube.example.net/api/v1"
//	socket_url = "https://vidtube.example.net"
//	proxy_bind = "127.0.0.1:8090"
//	media_host = "res.cloudinary.com"
//
// Tilde expansion is performed for data_dir and the config path itself. The
// package is read-only and stateless: Load runs once at startup and returns
// an immutable Config.
package config
