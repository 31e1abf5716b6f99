// Copyright 2015 Zalando SE
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package routecore implements the configuration-to-routing-table
// compilation pipeline and cluster runtime model of a dynamic HTTP reverse
// proxy.
//
// It ingests externally supplied route and cluster definitions
// (routespec.RouteSpec, routespec.ClusterSpec), runs them through a
// filterchain.Chain and validation.ValidateRoute/ValidateCluster, reconciles per-cluster runtime
// state in a clusterstate.Registry, compiles endpoint.Endpoint records for
// consumption by an external request matcher, and publishes the result as an
// immutable snapshot.Snapshot behind a single atomic pointer so that
// concurrent request-handling goroutines always observe a consistent,
// fully-reconciled generation.
//
// The manager package wires these pieces together; everything else in this
// module is usable standalone.
package routecore
