// Package file stores docnav's configuration as a TOML file, by default
// ~/.docnav/config.toml. Tables map onto dot-notation keys, so
//
//	[refresh]
//	interval = "5m"
//
// is read back as "refresh.interval".
package file
