package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pmctl/internal/service"
)

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func (o *optString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optInt is an int flag that remembers whether it was given.
type optInt struct {
	value int
	set   bool
}

func (o *optInt) String() string { return strconv.Itoa(o.value) }

func (o *optInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	o.value, o.set = n, true
	return nil
}

func (o *optInt) ptr() *int {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optBool is a boolean flag that remembers whether it was given.
// --active and --active=false are both meaningful.
type optBool struct {
	value bool
	set   bool
}

func (o *optBool) String() string { return strconv.FormatBool(o.value) }

func (o *optBool) IsBoolFlag() bool { return true }

func (o *optBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("not a boolean: %s", s)
	}
	o.value, o.set = b, true
	return nil
}

func (o *optBool) ptr() *bool {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// intList collects ids from repeated or comma-separated flags.
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, n := range *l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("not a number: %s", part)
		}
		*l = append(*l, n)
	}
	return nil
}

// checkOneOf validates an enumerated flag value. Empty means unset.
func checkOneOf(flagName, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s: %s (want one of: %s)", flagName, value, strings.Join(allowed, ", "))
}

var priorities = []string{service.PriorityLow, service.PriorityMedium, service.PriorityHigh}
