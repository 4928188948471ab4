package thelper

import (
	"strings"
	"testing"
)

func AssertString(t *testing.T, message, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s. expected: %s, actual: %s", message, expected, actual)
	}
}

func AssertInt(t *testing.T, message string, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s. expected: %d, actual: %d", message, expected, actual)
	}
}

func AssertBool(t *testing.T, message string, expected, actual bool) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s. expected: %t, actual: %t", message, expected, actual)
	}
}

func AssertContains(t *testing.T, message, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("%s. expected to contain: %q, actual: %q", message, needle, haystack)
	}
}

func AssertNotContains(t *testing.T, message, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("%s. expected not to contain: %q, actual: %q", message, needle, haystack)
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
