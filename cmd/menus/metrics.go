// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render statuses.
const (
	statusOK     = "ok"
	statusDenied = "denied"
	statusError  = "error"
)

var rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "menus_renders_total",
	Help: "Number of menus rendered, by status",
}, []string{"status"})

var renderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "menus_render_seconds",
	Help:    "Time spent building and rendering a menu",
	Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
})

var definitionsLoaded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "menus_definitions_loaded_total",
	Help: "Number of definition files loaded",
})
