// Copyright (c) 2025, Fleetworks, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package checkin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Check-in run metrics
	checkinDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_checkin_duration_seconds",
			Help:    "Time taken for a complete check-in run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	checkinTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_checkin_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"status"}, // success or error
	)

	collectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"collector"}, // managed_installs, profile, configmgmt, query_events, facts
	)

	submissionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_submission_total",
			Help: "Total number of differential submissions by outcome",
		},
		[]string{"class", "outcome"}, // sent or skipped
	)

	reportSectionCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scout_report_sections",
			Help: "Number of populated sections in the last assembled report",
		},
	)
)
