// Package config loads apimanager configuration with Viper.
//
// Load reads a config.yml found in the standard locations (or given with
// WithConfigFile), loads a .env file through godotenv, then lets environment
// variables override any key:
//
//	var cfg apimanager.Config
//	if err := config.Load("billing-client", &cfg); err != nil {
//	    return err
//	}
//
// LOGGING_LEVEL=debug sets logging.level and
// REACHABILITY_PROBE_ADDRESS=1.1.1.1:443 sets reachability.probe_address.
package config
