package handlerset

import "testing"

func TestCategoryFor(t *testing.T) {
	testCases := map[string]string{
		"events.notifications.task":    "task",
		"events.notifications.reading": "reading",
		"events.notifications.system":  "system",
		"task":                         "task",
	}
	for routingKey, expected := range testCases {
		actual := categoryFor(routingKey)
		if actual != expected {
			t.Errorf("unexpected category for `%s`: got '%s' instead of '%s'", routingKey, actual, expected)
		}
	}
}
