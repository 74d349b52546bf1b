// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package supervisor runs the long-lived services of "cinerec serve" under a
suture v4 supervisor tree.

	root ("cinerec")
	├── export-layer
	│   └── TextfileService (when metrics.textfile is set)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with backoff. Canceling the context passed to
Serve stops every service; services that miss ShutdownTimeout are listed by
UnstoppedServiceReport. Supervisor events are logged through sutureslog,
usually backed by logging.NewSlogLogger so they share the zerolog output.

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err := tree.Serve(ctx)
*/
package supervisor
