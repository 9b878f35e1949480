package config

import "github.com/spf13/viper"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("endian", "le")

	// Length-prefixed frames
	v.SetDefault("lp.width", 32)
	v.SetDefault("lp.compression", "none")
	v.SetDefault("lp.level", 0) // 0 means the algorithm's default

	// C strings and map keys
	v.SetDefault("cstr.max_len", 256)

	// Signature scanning
	v.SetDefault("scan.width", 32)
	v.SetDefault("scan.skip", 0)
	v.SetDefault("scan.limit", 0) // 0 means no limit

	// Scan result cache, disabled unless a directory is given
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.size", 1024)

	v.SetDefault("output.format", "json")
	v.SetDefault("log.level", "info")
	v.SetDefault("workers", 0) // 0 means auto-detect
}
