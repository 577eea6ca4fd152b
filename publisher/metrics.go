// Copyright 2026 Blink Labs Software
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

package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var publishAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "helm_publisher_attempts",
	Help: "Number of publish attempts",
}, []string{"result"})

var jobsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "helm_publisher_jobs_finished",
	Help: "Number of jobs that reached a final status",
}, []string{"status"})
