// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"errors"
	"fmt"
)

// ErrMissingPrecondition is wrapped by every error the engine returns.
// A play that fails a precondition has not happened; callers must not
// apply any part of it.
var ErrMissingPrecondition = errors.New("missing precondition")

// ErrInvalidTransition is returned when an advancement list does not fit
// the runner state it is applied to.
var ErrInvalidTransition = errors.New("invalid runner transition")

func missing(play, what string) error {
	return fmt.Errorf("%w: %s requires %s", ErrMissingPrecondition, play, what)
}
