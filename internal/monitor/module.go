package monitor

import "go.uber.org/fx"

// Module provides the shared point Recorder.
var Module = fx.Provide(NewRecorder)
