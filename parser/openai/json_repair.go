// Copyright 2025 Poiesic Systems
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


package openai

import "strings"

// repairJSON fixes formatting mistakes small models make in JSON answers:
// a missing opening quote before an object key (`, edge":` becomes
// `, "edge":`) and a trailing comma before a closing bracket or brace.
// String contents are copied untouched.
func repairJSON(s string) string {
	in := []rune(s)
	var out strings.Builder
	out.Grow(len(s) + 16)

	inString := false
	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out.WriteRune(ch)
			switch ch {
			case '\\':
				if i+1 < len(in) {
					i++
					out.WriteRune(in[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out.WriteRune(ch)
		case ',':
			j := skipSpace(in, i+1)
			if j < len(in) && (in[j] == ']' || in[j] == '}') {
				continue
			}
			out.WriteRune(ch)
			i = copyKey(in, i+1, &out) - 1
		case '{':
			out.WriteRune(ch)
			i = copyKey(in, i+1, &out) - 1
		default:
			out.WriteRune(ch)
		}
	}

	return out.String()
}

// copyKey copies whitespace and, when it finds a bare key closed by `":`,
// the quoted key. It returns the index of the next rune to process.
func copyKey(in []rune, start int, out *strings.Builder) int {
	i := skipSpace(in, start)
	out.WriteString(string(in[start:i]))

	if i >= len(in) || !isLetter(in[i]) {
		return i
	}
	end := i
	for end < len(in) && (isLetter(in[end]) || in[end] == '_') {
		end++
	}
	if end+1 < len(in) && in[end] == '"' && in[end+1] == ':' {
		out.WriteRune('"')
		out.WriteString(string(in[i:end]))
		out.WriteRune('"')
		return end + 1
	}
	return i
}

func skipSpace(in []rune, i int) int {
	for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t' || in[i] == '\r') {
		i++
	}
	return i
}
