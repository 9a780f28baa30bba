// harsh
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package helper

import "github.com/mitchellh/mapstructure"

// Decode is a generic function that takes an input of any type and attempts to decode it into a specified type T.
// It leverages the mapstructure package for decoding the input data.
//
// Parameters:
//   - input: This is the source data that needs to be decoded.
//     The input can be of any type, such as a map or a struct.
//   - defaults: Optional base value. Fields that are not present in the input
//     keep the value of the first given default.
//
// Returns:
//   - T: The function returns a value of type T, which is the target type that the input is decoded into.
//   - error: If the decoding process encounters any issues, an error is returned.
//     This could be due to a mismatch
//     between the input and the target type T or other decoding issues.
//
// The function utilizes a DecoderConfig from the mapstructure package to set up the decoding process.
// This configuration includes:
//   - Setting WeaklyTypedInput to true, allowing for more flexible and forgiving decoding.
//   - Custom DecodeHooks to convert string values to specific types like time.Duration or slice of strings.
//
// Example Usage:
//
//	raw := map[string]any{
//	    "vus":      "5",
//	    "duration": "10s",
//	}
//	opts, err := Decode[Options](raw, DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
func Decode[T any](input any, defaults ...T) (T, error) {
	var result T
	if len(defaults) > 0 {
		result = defaults[0]
	}
	config := &mapstructure.DecoderConfig{
		Metadata:         nil,
		WeaklyTypedInput: true,
		Result:           &result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return result, err
	}

	if err := decoder.Decode(input); err != nil {
		return result, err
	}

	return result, nil
}
