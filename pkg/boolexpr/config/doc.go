/*
Package config provides typed access to engine settings decoded from YAML or
JSON.

# Basic Usage

	cfg, err := config.FromFile("boolexpr.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	name := cfg.String("grammar", "default")
	truthy := cfg.Bool("truthy_root", false)
	timeout := cfg.Duration("timeout", 0)
	vars := cfg.Sub("symbols").Raw()

A typical settings file:

	grammar: strict
	truthy_root: false
	metrics: true
	tracing: true
	timeout: 50ms
	symbols:
	  A: true
	  limit: 10

Files can also come from any go-billy filesystem through FromFS, which keeps
tests and embedded deployments off the host disk.

# Coercion

Accessors never fail. A missing key, or a value of the wrong shape, returns
the default passed by the caller. Integers accept whole floats because JSON
decodes every number as float64. Durations accept Go duration strings or a
bare number of seconds.

# Thread Safety

Config is safe for concurrent reads. The map passed to New must not be
modified afterwards.
*/
package config
