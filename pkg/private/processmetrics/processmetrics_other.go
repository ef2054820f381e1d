// Copyright 2026 The GNP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !linux

package processmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

func NewCollector() (prometheus.Collector, error) {
	return nil, serrors.New("process metrics are only available on linux")
}

func Init(reg prometheus.Registerer) error {
	_, err := NewCollector()
	return err
}
