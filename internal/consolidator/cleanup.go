// =============================================================================
// Trade Documents - Note Cleanup
// =============================================================================
//
// Buyers type their engraving text into order-form fields that come
// pre-filled with placeholders ("여기에 문구:"). Each marketplace profile
// lists cleanup actions that strip this boilerplate before the note is
// merged into a label.
//
// SUPPORTED ACTIONS:
//   replace, regex_replace, trim, trim_prefix, trim_suffix, collapse_space,
//   prepend_string, append_string, lookup
//
// =============================================================================

package consolidator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hobbybrown/tradedocs/internal/config"
)

// Cleaner applies a profile's note cleanup actions in order.
type Cleaner struct {
	actions []config.TransformationAction

	// Compiled patterns for regex_replace actions, by action index.
	patterns map[int]*regexp.Regexp
}

// NewCleaner compiles the actions. It fails on an unknown action type or an
// invalid pattern, so a bad profile is reported before any row is read.
func NewCleaner(actions []config.TransformationAction) (*Cleaner, error) {
	c := &Cleaner{actions: actions, patterns: make(map[int]*regexp.Regexp)}
	for i, action := range actions {
		if !knownActions[action.Type] {
			return nil, fmt.Errorf("note_cleanup[%d]: unknown action %q", i, action.Type)
		}
		if action.Type == "regex_replace" && action.Find != "" {
			re, err := regexp.Compile(action.Find)
			if err != nil {
				return nil, fmt.Errorf("note_cleanup[%d]: invalid regex pattern: %w", i, err)
			}
			c.patterns[i] = re
		}
	}
	return c, nil
}

var knownActions = map[string]bool{
	"replace": true, "regex_replace": true, "trim": true, "trim_prefix": true,
	"trim_suffix": true, "collapse_space": true, "prepend_string": true,
	"append_string": true, "lookup": true,
}

// Clean applies every action to note.
func (c *Cleaner) Clean(note string) string {
	result := note
	for i, action := range c.actions {
		result = c.apply(i, result, action)
	}
	return result
}

// apply applies a single cleanup action.
func (c *Cleaner) apply(index int, value string, action config.TransformationAction) string {
	switch action.Type {

	case "replace":
		// EXAMPLE:
		//   Input: "여기에 문구: 하비"
		//   Action: replace with find "여기에 문구:" and value ""
		//   Output: " 하비"
		if action.Find == "" {
			return value
		}
		return strings.ReplaceAll(value, action.Find, action.Value)

	case "regex_replace":
		re, ok := c.patterns[index]
		if !ok {
			return value
		}
		return re.ReplaceAllString(value, action.Value)

	case "trim":
		return strings.TrimSpace(value)

	case "trim_prefix":
		return strings.TrimPrefix(value, action.Value)

	case "trim_suffix":
		return strings.TrimSuffix(value, action.Value)

	case "collapse_space":
		return strings.Join(strings.Fields(value), " ")

	case "prepend_string":
		return action.Value + value

	case "append_string":
		return value + action.Value

	case "lookup":
		// Whole-value replacement, e.g. a note that only says "없음".
		if replacement, exists := action.LookupTable[value]; exists {
			return replacement
		}
		return value
	}

	return value
}
