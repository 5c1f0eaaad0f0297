// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

package client

import "time"

// Observer receives request instrumentation events. Implementations must be
// safe for concurrent use.
type Observer interface {
	// ObserveAttempt is called once per HTTP exchange that produced a response
	ObserveAttempt(method, attempt string, statusCode int, elapsed time.Duration)

	// ObserveStepUp is called when a step-up challenge is about to be answered
	ObserveStepUp(method string)

	// ObserveConnectionError is called when an attempt fails at transport level
	ObserveConnectionError(method, attempt string)
}

type noopObserver struct{}

func (noopObserver) ObserveAttempt(string, string, int, time.Duration) {}

func (noopObserver) ObserveStepUp(string) {}

func (noopObserver) ObserveConnectionError(string, string) {}
