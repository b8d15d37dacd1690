// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

/*
Package supervisor provides process supervision for schedule mode using
suture v4.

The tree has a single jobs layer under the root supervisor:

	RootSupervisor ("aspectrank")
	└── JobsSupervisor ("jobs-layer")
	    └── RefreshService

A job that returns an error is restarted with suture's backoff; a job that
returns after ctx is canceled stops the tree. Supervisor events are logged
through sutureslog, bridged to zerolog by logging.NewSlogLogger.

# Usage

	slogger := logging.NewSlogLogger(logging.Logger())
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddJobService(services.NewRefreshService(batch, cfg, logger))
	return tree.Serve(ctx)

# Shutdown

Canceling ctx stops every service. Services that do not return within
TreeConfig.ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
