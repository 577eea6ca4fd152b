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

package common

// ValidationRuleFunc represents a function that validates an input against a
// single rule. Rules must not modify their input.
type ValidationRuleFunc[T any] func(input T) error

// VerifyRules runs the provided validation rules in order and wraps the first
// error encountered into a ValidationError. Rules after the first failure are
// not evaluated.
func VerifyRules[T any](
	errType ValidationErrorType,
	message string,
	input T,
	validationRules []ValidationRuleFunc[T],
) error {
	for i, rule := range validationRules {
		if err := rule(input); err != nil {
			details := map[string]any{"rule_index": i}
			if code, ok := CodeOf(err); ok {
				details["code"] = code.Name()
			}
			return NewValidationError(
				errType,
				message,
				details,
				err,
			)
		}
	}
	return nil
}
