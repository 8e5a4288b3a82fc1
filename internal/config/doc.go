// Package config defines the configuration surface: the overlay
// bound, the quit and capture-completion shortcuts, the acquisition
// chains per bind variant, the indicator style, and logging. Configs
// load from TOML over defaults and can be watched for live reload.
package config
