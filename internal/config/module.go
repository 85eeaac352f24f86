package config

import "go.uber.org/fx"

// Module exposes the environment and flag loader for fx graphs.
var Module = fx.Provide(Load)
